package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
	"github.com/stokq/stock-ledger/internal/ledger/usecase/command"
	"github.com/stokq/stock-ledger/internal/ledger/usecase/query"
	"github.com/stokq/stock-ledger/kafka"
	"github.com/stokq/stock-ledger/pkg/logger"
)

// LedgerHandler handles HTTP requests for items and stock movements
type LedgerHandler struct {
	recordMovementHandler *command.RecordMovementHandler
	createItemHandler     *command.CreateItemHandler
	updateItemHandler     *command.UpdateItemHandler
	deleteItemHandler     *command.DeleteItemHandler

	getItemHandler       *query.GetItemHandler
	getItemByCodeHandler *query.GetItemByCodeHandler
	listItemsHandler     *query.ListItemsHandler
	listMovementsHandler *query.ListMovementsHandler
	availabilityHandler  *query.CheckAvailabilityHandler
	statsHandler         *query.GetStatsHandler

	publisher *kafka.Publisher
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	recordMovementHandler *command.RecordMovementHandler,
	createItemHandler *command.CreateItemHandler,
	updateItemHandler *command.UpdateItemHandler,
	deleteItemHandler *command.DeleteItemHandler,
	getItemHandler *query.GetItemHandler,
	getItemByCodeHandler *query.GetItemByCodeHandler,
	listItemsHandler *query.ListItemsHandler,
	listMovementsHandler *query.ListMovementsHandler,
	availabilityHandler *query.CheckAvailabilityHandler,
	statsHandler *query.GetStatsHandler,
	publisher *kafka.Publisher,
) *LedgerHandler {
	return &LedgerHandler{
		recordMovementHandler: recordMovementHandler,
		createItemHandler:     createItemHandler,
		updateItemHandler:     updateItemHandler,
		deleteItemHandler:     deleteItemHandler,
		getItemHandler:        getItemHandler,
		getItemByCodeHandler:  getItemByCodeHandler,
		listItemsHandler:      listItemsHandler,
		listMovementsHandler:  listMovementsHandler,
		availabilityHandler:   availabilityHandler,
		statsHandler:          statsHandler,
		publisher:             publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordMovement handles POST /api/items/{id}/movements
func (h *LedgerHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || itemID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	var req struct {
		Direction  string     `json:"direction"`
		Quantity   int        `json:"quantity"`
		Reference  *string    `json:"reference"`
		Notes      *string    `json:"notes"`
		OccurredAt *time.Time `json:"occurred_at"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RecordMovementCommand{
		ItemID:    uint(itemID),
		Direction: req.Direction,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if req.OccurredAt != nil {
		cmd.OccurredAt = *req.OccurredAt
	}

	ctx := r.Context()
	movement, err := h.recordMovementHandler.Handle(ctx, cmd)
	if err != nil {
		logger.Error(ctx).Err(err).
			Uint("item_id", cmd.ItemID).
			Str("direction", cmd.Direction).
			Int("quantity", cmd.Quantity).
			Msg("Failed to record movement")
		respondError(w, err)
		return
	}

	// Publish movement event to Kafka (with tracing)
	if h.publisher != nil {
		event := kafka.MovementRecordedEvent{
			MovementID: movement.ID,
			ItemID:     movement.ItemID,
			ItemName:   movement.ItemName,
			Direction:  movement.Direction,
			Quantity:   movement.Quantity,
			NewBalance: movement.NewBalance,
		}
		if movement.Reference != nil {
			event.Reference = *movement.Reference
		}
		if err := h.publisher.PublishMovementRecorded(ctx, event); err != nil {
			// The movement is committed; a publish failure must not undo it.
			logger.Warn(ctx).Err(err).
				Uint("movement_id", movement.ID).
				Msg("Failed to publish movement event")
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Movement recorded successfully",
		Data:    movement,
	})
}

// CreateItem handles POST /api/items
func (h *LedgerHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code          string  `json:"code"`
		Name          string  `json:"name"`
		Description   *string `json:"description"`
		StockQuantity int     `json:"stock_quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.createItemHandler.Handle(command.CreateItemCommand{
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("code", req.Code).Msg("Failed to create item")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/items/{id}
func (h *LedgerHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.getItemHandler.Handle(query.GetItemQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// GetItemByCode handles GET /api/items/code/{code}
func (h *LedgerHandler) GetItemByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	item, err := h.getItemByCodeHandler.Handle(query.GetItemByCodeQuery{Code: code})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /api/items
func (h *LedgerHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listItemsHandler.Handle(query.ListItemsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list items")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list items",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// UpdateItem handles PUT /api/items/{id}
//
// This path writes item fields, stock_quantity included, without touching
// the movement ledger. It sits outside the ledger's consistency domain.
func (h *LedgerHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Code          *string `json:"code"`
		Name          *string `json:"name"`
		Description   *string `json:"description"`
		StockQuantity *int    `json:"stock_quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.updateItemHandler.Handle(command.UpdateItemCommand{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("item_id", id).Msg("Failed to update item")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *LedgerHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteItemHandler.Handle(command.DeleteItemCommand{ID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Uint("item_id", id).Msg("Failed to delete item")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}

// ListItemMovements handles GET /api/items/{id}/movements
func (h *LedgerHandler) ListItemMovements(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listMovementsHandler.Handle(query.ListMovementsQuery{
		ItemID: id,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movements,
	})
}

// ListMovements handles GET /api/movements
func (h *LedgerHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listMovementsHandler.Handle(query.ListMovementsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list movements",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movements,
	})
}

// CheckAvailability handles GET /api/items/{id}/availability
func (h *LedgerHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	quantity, _ := strconv.Atoi(r.URL.Query().Get("quantity"))

	availability, err := h.availabilityHandler.Handle(query.CheckAvailabilityQuery{
		ItemID:   id,
		Quantity: quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    availability,
	})
}

// GetStats handles GET /api/stats
func (h *LedgerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to collect stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to collect stats",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// RegisterRoutes registers all ledger routes
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/items", h.ListItems).Methods("GET")
	router.HandleFunc("/api/items", h.CreateItem).Methods("POST")
	router.HandleFunc("/api/items/code/{code}", h.GetItemByCode).Methods("GET")
	router.HandleFunc("/api/items/{id}", h.GetItem).Methods("GET")
	router.HandleFunc("/api/items/{id}", h.UpdateItem).Methods("PUT")
	router.HandleFunc("/api/items/{id}", h.DeleteItem).Methods("DELETE")
	router.HandleFunc("/api/items/{id}/movements", h.RecordMovement).Methods("POST")
	router.HandleFunc("/api/items/{id}/movements", h.ListItemMovements).Methods("GET")
	router.HandleFunc("/api/items/{id}/availability", h.CheckAvailability).Methods("GET")
	router.HandleFunc("/api/movements", h.ListMovements).Methods("GET")
	router.HandleFunc("/api/stats", h.GetStats).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *LedgerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Ledger service is healthy",
		})
	}).Methods("GET")
}

// respondError translates domain errors into HTTP responses. Insufficient
// stock keeps its structured quantities in the body so clients never need
// a follow-up query to explain the failure.
func respondError(w http.ResponseWriter, err error) {
	var insufficientErr *domain.InsufficientStockError
	var quantityErr *domain.InvalidQuantityError
	var directionErr *domain.InvalidDirectionError

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
	case errors.As(err, &insufficientErr):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   insufficientErr.Error(),
			Data: map[string]int{
				"available": insufficientErr.Available,
				"requested": insufficientErr.Requested,
			},
		})
	case errors.As(err, &quantityErr), errors.As(err, &directionErr):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicateCode):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	case errors.Is(err, domain.ErrConflictRetryExhausted):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	}
}

// parseID extracts a positive integer path variable; writes a 400 on failure.
func parseID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
