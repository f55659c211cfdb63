package projection

import (
	"fmt"
	"sort"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedContribution returns the signed quantity an entry contributes to the
// stock of locationID. Entries that do not touch the location contribute zero.
// This is used by both the fold and the repositories to keep the contribution
// rules in one place.
func SignedContribution(locationID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	switch entry.Kind {
	case domain.Receipt:
		if entry.ToLocationID == locationID {
			return entry.Quantity, nil
		}
	case domain.Consumption:
		if entry.FromLocationID == locationID {
			return entry.Quantity.Neg(), nil
		}
	case domain.Transfer:
		// Debit leg subtracts at the source, credit leg adds at the destination.
		if entry.FromLocationID == locationID {
			return entry.Quantity.Neg(), nil
		}
		if entry.ToLocationID == locationID {
			return entry.Quantity, nil
		}
	case domain.Adjustment:
		if entry.ToLocationID == locationID {
			return entry.QuantityChange, nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown entry kind %q for entry %s", entry.Kind, entry.EntryID)
	}
	return decimal.Zero, nil
}

// Project folds the ordered ledger entries for one (location, part) key into
// the current quantity. The fold must run in (occurred_at, entry_id) order
// because adjustments are only meaningful relative to the entries before them;
// Project sorts defensively so callers may pass any ordering.
//
// A negative intermediate or final quantity is a data-integrity fault: it
// means an upstream entry was lost or misattributed. It is reported as
// ErrNegativeStock, never clamped, so the reconciler can address it explicitly.
//
// Project has no side effects and is deterministic for a given entry
// sequence, which is what makes the stock cache disposable.
func Project(locationID string, entries []domain.LedgerEntry) (decimal.Decimal, error) {
	ordered := make([]domain.LedgerEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].OccurredAt.Equal(ordered[j].OccurredAt) {
			return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
		}
		return ordered[i].EntryID < ordered[j].EntryID
	})

	total := decimal.Zero
	for _, entry := range ordered {
		contribution, err := SignedContribution(locationID, entry)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(contribution)
		if total.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: location %s part %s reaches %s at entry %s",
				apperrors.ErrNegativeStock, locationID, entry.PartID, total.String(), entry.EntryID)
		}
	}
	return total, nil
}
