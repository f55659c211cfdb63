package services

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/dto"
)

// LedgerWriterSvc defines the single-entry write commands. A write whose
// entry committed but whose cache key could be neither invalidated nor
// refreshed returns the entry together with ErrCacheStale; callers must not
// retry such a write.
type LedgerWriterSvc interface {
	// RecordReceipt commits a RECEIPT entry and invalidates the touched key.
	RecordReceipt(ctx context.Context, req dto.CreateReceiptRequest, actorID string) (*domain.LedgerEntry, error)

	// RecordConsumption commits a CONSUMPTION entry and invalidates the
	// touched key. Fails with ErrInsufficientStock when the source's
	// projected stock would go negative.
	RecordConsumption(ctx context.Context, req dto.CreateConsumptionRequest, actorID string) (*domain.LedgerEntry, error)
}

// LedgerReaderSvc defines the audit read operations.
type LedgerReaderSvc interface {
	// GetEntry retrieves one committed entry.
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated audit slice of a key's ledger,
	// ordered by (occurred_at, entry_id).
	ListEntries(ctx context.Context, locationID, partID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
