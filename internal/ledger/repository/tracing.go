package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

var tracer = otel.Tracer("ledger-repository")

// GormLedgerRepositoryWithTracing wraps GormLedgerRepository with tracing
type GormLedgerRepositoryWithTracing struct {
	*GormLedgerRepository
}

// NewGormLedgerRepositoryWithTracing creates a new repository with tracing
func NewGormLedgerRepositoryWithTracing(db *gorm.DB) *GormLedgerRepositoryWithTracing {
	return &GormLedgerRepositoryWithTracing{
		GormLedgerRepository: NewGormLedgerRepository(db),
	}
}

// CreateItem with tracing
func (r *GormLedgerRepositoryWithTracing) CreateItemWithContext(ctx context.Context, item *domain.Item) error {
	_, span := tracer.Start(ctx, "repository.CreateItem",
		trace.WithAttributes(
			attribute.String("item.code", item.Code),
			attribute.Int("item.stock_quantity", item.StockQuantity),
		),
	)
	defer span.End()

	if err := r.GormLedgerRepository.CreateItem(item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("item.id", int(item.ID)))
	return nil
}

// FindItemByID with tracing
func (r *GormLedgerRepositoryWithTracing) FindItemByIDWithContext(ctx context.Context, id uint) (*domain.Item, error) {
	_, span := tracer.Start(ctx, "repository.FindItemByID",
		trace.WithAttributes(attribute.Int("item.id", int(id))),
	)
	defer span.End()

	item, err := r.GormLedgerRepository.FindItemByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("item.code", item.Code),
		attribute.Int("item.stock_quantity", item.StockQuantity),
	)
	return item, nil
}

// ApplyMovement with tracing. The span covers the whole atomic unit,
// including lock-conflict retries.
func (r *GormLedgerRepositoryWithTracing) ApplyMovement(ctx context.Context, movement *domain.Movement) error {
	ctx, span := tracer.Start(ctx, "repository.ApplyMovement",
		trace.WithAttributes(
			attribute.Int("movement.item_id", int(movement.ItemID)),
			attribute.String("movement.direction", movement.Direction),
			attribute.Int("movement.quantity", movement.Quantity),
		),
	)
	defer span.End()

	if err := r.GormLedgerRepository.ApplyMovement(ctx, movement); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("movement.id", int(movement.ID)))
	return nil
}

// FindMovementsByItemID with tracing
func (r *GormLedgerRepositoryWithTracing) FindMovementsByItemIDWithContext(ctx context.Context, itemID uint, limit, offset int) ([]domain.Movement, error) {
	_, span := tracer.Start(ctx, "repository.FindMovementsByItemID",
		trace.WithAttributes(
			attribute.Int("movement.item_id", int(itemID)),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	movements, err := r.GormLedgerRepository.FindMovementsByItemID(itemID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(movements)))
	return movements, nil
}

// Stats with tracing
func (r *GormLedgerRepositoryWithTracing) StatsWithContext(ctx context.Context) (*domain.LedgerStats, error) {
	_, span := tracer.Start(ctx, "repository.Stats")
	defer span.End()

	stats, err := r.GormLedgerRepository.Stats()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("stats.item_count", stats.ItemCount),
		attribute.Int64("stats.total_stock", stats.TotalStock),
	)
	return stats, nil
}
