package command

import (
	"errors"
	"testing"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

func TestCreateItem(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewCreateItemHandler(repo)

	item, err := handler.Handle(CreateItemCommand{
		Code:          "BOLT-M8",
		Name:          "M8 Bolt",
		StockQuantity: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected item to be assigned an id")
	}
	if item.StockQuantity != 500 {
		t.Errorf("expected opening balance 500, got %d", item.StockQuantity)
	}
}

func TestCreateItemValidation(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewCreateItemHandler(repo)

	cases := []struct {
		name string
		cmd  CreateItemCommand
	}{
		{"missing code", CreateItemCommand{Name: "Nameless"}},
		{"missing name", CreateItemCommand{Code: "CODE-1"}},
		{"negative opening balance", CreateItemCommand{Code: "CODE-2", Name: "Negative", StockQuantity: -1}},
	}

	for _, tc := range cases {
		if _, err := handler.Handle(tc.cmd); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestCreateItemDuplicateCode(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewCreateItemHandler(repo)

	if _, err := handler.Handle(CreateItemCommand{Code: "DUP-1", Name: "First"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := handler.Handle(CreateItemCommand{Code: "DUP-1", Name: "Second"})
	if !errors.Is(err, domain.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "UPD-1", 30)
	handler := NewUpdateItemHandler(repo)

	newName := "Renamed Widget"
	updated, err := handler.Handle(UpdateItemCommand{ID: item.ID, Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.Code != item.Code {
		t.Errorf("code changed unexpectedly: %q", updated.Code)
	}
	if updated.StockQuantity != 30 {
		t.Errorf("balance changed unexpectedly: %d", updated.StockQuantity)
	}
}

func TestUpdateItemRejectsNegativeStock(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "UPD-2", 30)
	handler := NewUpdateItemHandler(repo)

	negative := -5
	if _, err := handler.Handle(UpdateItemCommand{ID: item.ID, StockQuantity: &negative}); err == nil {
		t.Fatal("expected error for negative stock quantity")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewUpdateItemHandler(repo)

	name := "Ghost"
	_, err := handler.Handle(UpdateItemCommand{ID: 42, Name: &name})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	repo := newMemLedgerRepository()
	item := seedItem(t, repo, "DEL-1", 0)
	handler := NewDeleteItemHandler(repo)

	if err := handler.Handle(DeleteItemCommand{ID: item.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindItemByID(item.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected item to be gone, got %v", err)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	repo := newMemLedgerRepository()
	handler := NewDeleteItemHandler(repo)

	if err := handler.Handle(DeleteItemCommand{ID: 42}); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
