//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/stokq/stock-ledger/internal/ledger/delivery/http"
	"github.com/stokq/stock-ledger/internal/ledger/usecase/command"
	"github.com/stokq/stock-ledger/internal/ledger/usecase/query"
	"github.com/stokq/stock-ledger/kafka"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLedgerRepository,
)

var CommandSet = wire.NewSet(
	command.NewRecordMovementHandler,
	command.NewCreateItemHandler,
	command.NewUpdateItemHandler,
	command.NewDeleteItemHandler,
)

var QuerySet = wire.NewSet(
	query.NewGetItemHandler,
	query.NewGetItemByCodeHandler,
	query.NewListItemsHandler,
	query.NewListMovementsHandler,
	query.NewCheckAvailabilityHandler,
	query.NewGetStatsHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.LedgerHandler, error) {
	wire.Build(
		RepositorySet,
		CommandSet,
		QuerySet,
		http.NewLedgerHandler,
	)
	return nil, nil
}
