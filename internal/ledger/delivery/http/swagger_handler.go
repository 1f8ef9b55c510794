package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the Stock Ledger Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateItem godoc
// @Summary Create new item
// @Description Create a new stocked item with its starting balance
// @Tags Items
// @Accept json
// @Produce json
// @Param request body object{code=string,name=string,description=string,stock_quantity=int} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/items [post]
func (h *LedgerHandler) CreateItemDoc() {}

// ListItems godoc
// @Summary List items
// @Description Get a list of items with pagination
// @Tags Items
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/items [get]
func (h *LedgerHandler) ListItemsDoc() {}

// GetItem godoc
// @Summary Get item by ID
// @Description Get a specific item, including its current stock balance
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id} [get]
func (h *LedgerHandler) GetItemDoc() {}

// RecordMovement godoc
// @Summary Record a stock movement
// @Description Apply an IN or OUT movement to an item's balance and append a ledger entry, atomically
// @Tags Movements
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body object{direction=string,quantity=int,reference=string,notes=string,occurred_at=string} true "Movement data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string,data=object{available=int,requested=int}}
// @Router /api/items/{id}/movements [post]
func (h *LedgerHandler) RecordMovementDoc() {}

// ListItemMovements godoc
// @Summary List an item's ledger
// @Description Get the append-only movement history of one item, newest first
// @Tags Movements
// @Produce json
// @Param id path int true "Item ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id}/movements [get]
func (h *LedgerHandler) ListItemMovementsDoc() {}

// CheckAvailability godoc
// @Summary Check item availability
// @Description Check whether an item can cover an outbound movement of the requested quantity
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Param quantity query int false "Requested quantity (default: 1)"
// @Success 200 {object} object{success=bool,data=object{item_id=int,available=bool,stock=int,requested=int}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id}/availability [get]
func (h *LedgerHandler) CheckAvailabilityDoc() {}

// GetStats godoc
// @Summary Ledger statistics
// @Description Item count, total stock and movement counts per direction
// @Tags Stats
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/stats [get]
func (h *LedgerHandler) GetStatsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *LedgerHandler) HealthCheckDoc() {}
