package query

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// stubRepository returns canned data and records the limits it was given.
type stubRepository struct {
	items     map[uint]*domain.Item
	movements []domain.Movement
	stats     *domain.LedgerStats

	lastLimit  int
	lastOffset int
}

func newStubRepository() *stubRepository {
	return &stubRepository{items: make(map[uint]*domain.Item)}
}

func (s *stubRepository) CreateItem(item *domain.Item) error { return nil }

func (s *stubRepository) FindItemByID(id uint) (*domain.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, domain.ErrItemNotFound)
	}
	return item, nil
}

func (s *stubRepository) FindItemByCode(code string) (*domain.Item, error) {
	for _, item := range s.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, fmt.Errorf("code %s: %w", code, domain.ErrItemNotFound)
}

func (s *stubRepository) FindAllItems(limit, offset int) ([]domain.Item, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, *item)
	}
	return items, nil
}

func (s *stubRepository) UpdateItem(item *domain.Item) error { return nil }
func (s *stubRepository) DeleteItem(id uint) error           { return nil }

func (s *stubRepository) ApplyMovement(ctx context.Context, movement *domain.Movement) error {
	return nil
}

func (s *stubRepository) FindMovementsByItemID(itemID uint, limit, offset int) ([]domain.Movement, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	var out []domain.Movement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepository) FindAllMovements(limit, offset int) ([]domain.Movement, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.movements, nil
}

func (s *stubRepository) Stats() (*domain.LedgerStats, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("stats unavailable")
	}
	return s.stats, nil
}

func TestGetItem(t *testing.T) {
	repo := newStubRepository()
	repo.items[1] = &domain.Item{ID: 1, Code: "GAD-1", Name: "Gadget", StockQuantity: 12}
	handler := NewGetItemHandler(repo)

	item, err := handler.Handle(GetItemQuery{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Code != "GAD-1" {
		t.Errorf("expected code GAD-1, got %q", item.Code)
	}
}

func TestGetItemNotFound(t *testing.T) {
	handler := NewGetItemHandler(newStubRepository())

	_, err := handler.Handle(GetItemQuery{ID: 7})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGetItemRequiresID(t *testing.T) {
	handler := NewGetItemHandler(newStubRepository())

	if _, err := handler.Handle(GetItemQuery{}); err == nil {
		t.Fatal("expected error for zero id")
	}
}

func TestGetItemByCode(t *testing.T) {
	repo := newStubRepository()
	repo.items[3] = &domain.Item{ID: 3, Code: "GAD-3", Name: "Gadget"}
	handler := NewGetItemByCodeHandler(repo)

	item, err := handler.Handle(GetItemByCodeQuery{Code: "GAD-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 3 {
		t.Errorf("expected id 3, got %d", item.ID)
	}

	if _, err := handler.Handle(GetItemByCodeQuery{}); err == nil {
		t.Error("expected error for empty code")
	}
}

func TestListItemsAppliesLimitDefaults(t *testing.T) {
	repo := newStubRepository()
	handler := NewListItemsHandler(repo)

	if _, err := handler.Handle(ListItemsQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 10 {
		t.Errorf("expected default limit 10, got %d", repo.lastLimit)
	}

	if _, err := handler.Handle(ListItemsQuery{Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Errorf("expected limit capped at 100, got %d", repo.lastLimit)
	}
}

func TestListMovementsForItem(t *testing.T) {
	repo := newStubRepository()
	repo.items[1] = &domain.Item{ID: 1, Code: "GAD-1", Name: "Gadget"}
	repo.movements = []domain.Movement{
		{ID: 2, ItemID: 1, Direction: domain.DirectionOut, Quantity: 3},
		{ID: 1, ItemID: 1, Direction: domain.DirectionIn, Quantity: 10},
		{ID: 3, ItemID: 2, Direction: domain.DirectionIn, Quantity: 1},
	}
	handler := NewListMovementsHandler(repo)

	movements, err := handler.Handle(ListMovementsQuery{ItemID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movements) != 2 {
		t.Errorf("expected 2 movements for item 1, got %d", len(movements))
	}
	if repo.lastLimit != 20 {
		t.Errorf("expected default limit 20, got %d", repo.lastLimit)
	}
}

func TestListMovementsUnknownItem(t *testing.T) {
	handler := NewListMovementsHandler(newStubRepository())

	_, err := handler.Handle(ListMovementsQuery{ItemID: 9})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestListMovementsWholeLedger(t *testing.T) {
	repo := newStubRepository()
	repo.movements = []domain.Movement{
		{ID: 1, ItemID: 1, Direction: domain.DirectionIn, Quantity: 10},
		{ID: 2, ItemID: 2, Direction: domain.DirectionIn, Quantity: 4},
	}
	handler := NewListMovementsHandler(repo)

	movements, err := handler.Handle(ListMovementsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movements) != 2 {
		t.Errorf("expected the whole ledger, got %d rows", len(movements))
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := newStubRepository()
	repo.items[1] = &domain.Item{ID: 1, Code: "GAD-1", Name: "Gadget", StockQuantity: 8}
	handler := NewCheckAvailabilityHandler(repo)

	cases := []struct {
		name      string
		quantity  int
		available bool
		requested int
	}{
		{"covered", 5, true, 5},
		{"exact", 8, true, 8},
		{"short", 9, false, 9},
		{"defaults to one", 0, true, 1},
	}

	for _, tc := range cases {
		result, err := handler.Handle(CheckAvailabilityQuery{ItemID: 1, Quantity: tc.quantity})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if result.Available != tc.available {
			t.Errorf("%s: expected available=%v, got %v", tc.name, tc.available, result.Available)
		}
		if result.Requested != tc.requested {
			t.Errorf("%s: expected requested=%d, got %d", tc.name, tc.requested, result.Requested)
		}
		if result.Stock != 8 {
			t.Errorf("%s: expected stock 8, got %d", tc.name, result.Stock)
		}
	}
}

func TestGetStats(t *testing.T) {
	repo := newStubRepository()
	repo.stats = &domain.LedgerStats{ItemCount: 3, TotalStock: 120, InboundCount: 5, OutboundCount: 2}
	handler := NewGetStatsHandler(repo)

	stats, err := handler.Handle(GetStatsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalStock != 120 {
		t.Errorf("expected total stock 120, got %d", stats.TotalStock)
	}
}
