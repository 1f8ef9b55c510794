package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
	"github.com/stokq/stock-ledger/pkg/logger"
)

// Bounded retry budget for lock conflicts on the same item row.
const maxApplyRetries = 3

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{}, &domain.Movement{})
}

func (r *GormLedgerRepository) CreateItem(item *domain.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("code %q: %w", item.Code, domain.ErrDuplicateCode)
		}
		return err
	}
	return nil
}

func (r *GormLedgerRepository) FindItemByID(id uint) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("id %d: %w", id, domain.ErrItemNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormLedgerRepository) FindItemByCode(code string) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.Where("code = ?", code).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("code %q: %w", code, domain.ErrItemNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormLedgerRepository) FindAllItems(limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&items).Error
	return items, err
}

// UpdateItem is the generic admin write path. It saves whatever state the
// caller hands it, including StockQuantity, without consulting the ledger.
// Balance changes that must stay consistent with the movement log go
// through ApplyMovement instead.
func (r *GormLedgerRepository) UpdateItem(item *domain.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("code %q: %w", item.Code, domain.ErrDuplicateCode)
		}
		return err
	}
	return nil
}

func (r *GormLedgerRepository) DeleteItem(id uint) error {
	result := r.db.Delete(&domain.Item{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("id %d: %w", id, domain.ErrItemNotFound)
	}
	return nil
}

// ApplyMovement runs the ledger's atomic unit: lock the item row, verify
// the movement is legal, persist the new balance and the movement record,
// and commit both together. On any failure the transaction rolls back and
// nothing is observable outside it.
//
// The SELECT ... FOR UPDATE serializes concurrent movements against the
// same item; movements against different items do not contend. Deadlock
// and serialization errors are retried a bounded number of times.
func (r *GormLedgerRepository) ApplyMovement(ctx context.Context, movement *domain.Movement) error {
	var lastErr error

	for attempt := 1; attempt <= maxApplyRetries; attempt++ {
		lastErr = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var item domain.Item
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&item, movement.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("id %d: %w", movement.ItemID, domain.ErrItemNotFound)
				}
				return err
			}

			newBalance := item.StockQuantity + movement.Delta()
			if newBalance < 0 {
				return &domain.InsufficientStockError{
					ItemID:    item.ID,
					Available: item.StockQuantity,
					Requested: movement.Quantity,
				}
			}

			item.StockQuantity = newBalance
			if err := tx.Save(&item).Error; err != nil {
				return err
			}

			movement.ItemName = item.Name
			movement.NewBalance = newBalance
			if err := tx.Create(movement).Error; err != nil {
				return err
			}

			return nil
		})

		if lastErr == nil {
			return nil
		}
		if !isRetryableTxError(lastErr) {
			return lastErr
		}

		logger.Warn(ctx).
			Err(lastErr).
			Uint("item_id", movement.ItemID).
			Int("attempt", attempt).
			Msg("Movement transaction conflict, retrying")
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}

	return fmt.Errorf("%w: %v", domain.ErrConflictRetryExhausted, lastErr)
}

func (r *GormLedgerRepository) FindMovementsByItemID(itemID uint, limit, offset int) ([]domain.Movement, error) {
	var movements []domain.Movement
	err := r.db.Where("item_id = ?", itemID).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&movements).Error
	return movements, err
}

func (r *GormLedgerRepository) FindAllMovements(limit, offset int) ([]domain.Movement, error) {
	var movements []domain.Movement
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

func (r *GormLedgerRepository) Stats() (*domain.LedgerStats, error) {
	var stats domain.LedgerStats

	if err := r.db.Model(&domain.Item{}).Count(&stats.ItemCount).Error; err != nil {
		return nil, err
	}

	var totalStock *int64
	if err := r.db.Model(&domain.Item{}).
		Select("SUM(stock_quantity)").Scan(&totalStock).Error; err != nil {
		return nil, err
	}
	if totalStock != nil {
		stats.TotalStock = *totalStock
	}

	if err := r.db.Model(&domain.Movement{}).
		Where("direction = ?", domain.DirectionIn).
		Count(&stats.InboundCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.Movement{}).
		Where("direction = ?", domain.DirectionOut).
		Count(&stats.OutboundCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isRetryableTxError reports Postgres deadlock_detected (40P01) and
// serialization_failure (40001), the two conflict outcomes the bounded
// retry loop is allowed to absorb. Business failures are never retried.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40P01" || pgErr.Code == "40001"
}
