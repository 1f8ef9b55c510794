package ledger

import (
	"gorm.io/gorm"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
	"github.com/stokq/stock-ledger/internal/ledger/repository"
)

// ProvideLedgerRepository provides the ledger repository with tracing
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepositoryWithTracing(db)
}
