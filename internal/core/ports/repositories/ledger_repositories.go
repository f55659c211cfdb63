package repositories

import (
	"context"

	"github.com/partbin/stockledger/internal/core/domain"
)

// LedgerReader defines read operations over committed ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single committed entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// EntriesForKey retrieves the full ledger slice for one (location, part)
	// key, ordered by (occurred_at, entry_id). This is the projector's input.
	EntriesForKey(ctx context.Context, locationID, partID string) ([]domain.LedgerEntry, error)

	// ListEntriesForKey retrieves a keyset-paginated slice of the key's
	// ledger ordered by (occurred_at, entry_id), for audit and reporting.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesForKey(ctx context.Context, locationID, partID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListKeys returns every (location, part) key that has ledger history.
	ListKeys(ctx context.Context) ([]domain.StockKey, error)
}

// LedgerWriter defines the append-only write operations. Committed entries
// are never mutated or deleted; corrections are new entries.
type LedgerWriter interface {
	// AppendEntry durably commits one entry, assigning its OccurredAt.
	// Writes for a given key are serialized against each other; a
	// CONSUMPTION entry that would overdraw the source fails with
	// ErrInsufficientStock and commits nothing.
	AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error

	// AppendTransferPair commits the debit and credit legs of a transfer as
	// a single atomic unit: either both legs are durably visible or neither
	// is. A pair that would overdraw the source fails with
	// ErrInsufficientStock; storage failures map to ErrTransfer.
	AppendTransferPair(ctx context.Context, debit, credit *domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
