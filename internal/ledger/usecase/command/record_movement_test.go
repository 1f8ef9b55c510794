package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// memLedgerRepository is an in-memory LedgerRepository. ApplyMovement holds
// a single lock for the whole balance check plus append, matching the row
// lock the real repository takes.
type memLedgerRepository struct {
	mu        sync.Mutex
	items     map[uint]*domain.Item
	movements []domain.Movement
	nextID    uint
}

func newMemLedgerRepository() *memLedgerRepository {
	return &memLedgerRepository{
		items:  make(map[uint]*domain.Item),
		nextID: 1,
	}
}

func (r *memLedgerRepository) CreateItem(item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Code == item.Code {
			return domain.ErrDuplicateCode
		}
	}

	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *memLedgerRepository) FindItemByID(id uint) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, domain.ErrItemNotFound)
	}
	copied := *item
	return &copied, nil
}

func (r *memLedgerRepository) FindItemByCode(code string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.Code == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("code %s: %w", code, domain.ErrItemNotFound)
}

func (r *memLedgerRepository) FindAllItems(limit, offset int) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}
	return items, nil
}

func (r *memLedgerRepository) UpdateItem(item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *memLedgerRepository) DeleteItem(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memLedgerRepository) ApplyMovement(ctx context.Context, movement *domain.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[movement.ItemID]
	if !ok {
		return fmt.Errorf("id %d: %w", movement.ItemID, domain.ErrItemNotFound)
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
	item.UpdatedAt = time.Now()

	movement.ID = r.nextID
	r.nextID++
	movement.ItemName = item.Name
	movement.NewBalance = newBalance
	movement.CreatedAt = time.Now()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memLedgerRepository) FindMovementsByItemID(itemID uint, limit, offset int) ([]domain.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var movements []domain.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ItemID == itemID {
			movements = append(movements, r.movements[i])
		}
	}
	return movements, nil
}

func (r *memLedgerRepository) FindAllMovements(limit, offset int) ([]domain.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movements := make([]domain.Movement, 0, len(r.movements))
	for i := len(r.movements) - 1; i >= 0; i-- {
		movements = append(movements, r.movements[i])
	}
	return movements, nil
}

func (r *memLedgerRepository) Stats() (*domain.LedgerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.LedgerStats{ItemCount: int64(len(r.items))}
	for _, item := range r.items {
		stats.TotalStock += int64(item.StockQuantity)
	}
	for _, m := range r.movements {
		if m.Direction == domain.DirectionIn {
			stats.InboundCount++
		} else {
			stats.OutboundCount++
		}
	}
	return stats, nil
}

func (r *memLedgerRepository) movementCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

func seedItem(t *testing.T, repo *memLedgerRepository, code string, stock int) *domain.Item {
	t.Helper()
	item := &domain.Item{Code: code, Name: "Widget " + code, StockQuantity: stock}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("seed item %s: %v", code, err)
	}
	return item
}

func TestRecordMovementInboundIncreasesBalance(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-1", 100)
	handler := NewRecordMovementHandler(repo)

	movement, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    item.ID,
		Direction: domain.DirectionIn,
		Quantity:  20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if movement.ID == 0 {
		t.Error("expected movement to be assigned an id")
	}
	if movement.ItemName != item.Name {
		t.Errorf("expected item name %q, got %q", item.Name, movement.ItemName)
	}
	if movement.OccurredAt.IsZero() {
		t.Error("expected occurred_at to default to now")
	}
	if movement.NewBalance != 120 {
		t.Errorf("expected new balance 120 on the movement, got %d", movement.NewBalance)
	}

	updated, err := repo.FindItemByID(item.ID)
	if err != nil {
		t.Fatalf("find item: %v", err)
	}
	if updated.StockQuantity != 120 {
		t.Errorf("expected balance 120, got %d", updated.StockQuantity)
	}
}

func TestRecordMovementOutboundDecreasesBalance(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-2", 100)
	handler := NewRecordMovementHandler(repo)

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    item.ID,
		Direction: domain.DirectionOut,
		Quantity:  30,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, _ := repo.FindItemByID(item.ID)
	if updated.StockQuantity != 70 {
		t.Errorf("expected balance 70, got %d", updated.StockQuantity)
	}
}

func TestRecordMovementOverdrawRejected(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-3", 15)
	handler := NewRecordMovementHandler(repo)

	_, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    item.ID,
		Direction: domain.DirectionOut,
		Quantity:  25,
	})

	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 15 {
		t.Errorf("expected available 15, got %d", insufficient.Available)
	}
	if insufficient.Requested != 25 {
		t.Errorf("expected requested 25, got %d", insufficient.Requested)
	}

	// A rejected movement leaves no trace
	updated, _ := repo.FindItemByID(item.ID)
	if updated.StockQuantity != 15 {
		t.Errorf("balance changed on rejected movement: %d", updated.StockQuantity)
	}
	if repo.movementCount() != 0 {
		t.Errorf("expected no movement rows, got %d", repo.movementCount())
	}
}

func TestRecordMovementDrainToZeroAllowed(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-4", 40)
	handler := NewRecordMovementHandler(repo)

	if _, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    item.ID,
		Direction: domain.DirectionOut,
		Quantity:  40,
	}); err != nil {
		t.Fatalf("draining to exactly zero should succeed: %v", err)
	}

	updated, _ := repo.FindItemByID(item.ID)
	if updated.StockQuantity != 0 {
		t.Errorf("expected balance 0, got %d", updated.StockQuantity)
	}
}

func TestRecordMovementUnknownItem(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewRecordMovementHandler(repo)

	_, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    999,
		Direction: domain.DirectionIn,
		Quantity:  5,
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRecordMovementInvalidQuantity(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-5", 10)
	handler := NewRecordMovementHandler(repo)

	for _, quantity := range []int{0, -5} {
		_, err := handler.Handle(context.Background(), RecordMovementCommand{
			ItemID:    item.ID,
			Direction: domain.DirectionIn,
			Quantity:  quantity,
		})

		var invalid *domain.InvalidQuantityError
		if !errors.As(err, &invalid) {
			t.Errorf("quantity %d: expected InvalidQuantityError, got %v", quantity, err)
			continue
		}
		if invalid.Quantity != quantity {
			t.Errorf("expected quantity %d in error, got %d", quantity, invalid.Quantity)
		}
	}

	if repo.movementCount() != 0 {
		t.Errorf("invalid commands must not reach the store, got %d rows", repo.movementCount())
	}
}

func TestRecordMovementInvalidDirection(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-6", 10)
	handler := NewRecordMovementHandler(repo)

	_, err := handler.Handle(context.Background(), RecordMovementCommand{
		ItemID:    item.ID,
		Direction: "SIDEWAYS",
		Quantity:  1,
	})

	var invalid *domain.InvalidDirectionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDirectionError, got %v", err)
	}
}

func TestRecordMovementConcurrentOverdraw(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-7", 100)
	handler := NewRecordMovementHandler(repo)

	// Two withdrawals of 60 against a balance of 100. Exactly one can win.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), RecordMovementCommand{
				ItemID:    item.ID,
				Direction: domain.DirectionOut,
				Quantity:  60,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *domain.InsufficientStockError
		if !errors.As(err, &insufficient) {
			t.Errorf("loser should fail with InsufficientStockError, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}

	updated, _ := repo.FindItemByID(item.ID)
	if updated.StockQuantity != 40 {
		t.Errorf("expected balance 40 after one withdrawal, got %d", updated.StockQuantity)
	}
	if repo.movementCount() != 1 {
		t.Errorf("expected one movement row, got %d", repo.movementCount())
	}
}

func TestRecordMovementBalanceMatchesJournal(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "WID-8", 0)
	handler := NewRecordMovementHandler(repo)

	steps := []struct {
		direction string
		quantity  int
	}{
		{domain.DirectionIn, 50},
		{domain.DirectionOut, 10},
		{domain.DirectionIn, 7},
		{domain.DirectionOut, 30},
	}

	for _, step := range steps {
		if _, err := handler.Handle(context.Background(), RecordMovementCommand{
			ItemID:    item.ID,
			Direction: step.direction,
			Quantity:  step.quantity,
		}); err != nil {
			t.Fatalf("%s %d: %v", step.direction, step.quantity, err)
		}
	}

	movements, err := repo.FindMovementsByItemID(item.ID, 100, 0)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}

	sum := 0
	for _, m := range movements {
		sum += m.Delta()
	}

	updated, _ := repo.FindItemByID(item.ID)
	if updated.StockQuantity != sum {
		t.Errorf("balance %d does not equal journal sum %d", updated.StockQuantity, sum)
	}
	if updated.StockQuantity != 17 {
		t.Errorf("expected balance 17, got %d", updated.StockQuantity)
	}
}
