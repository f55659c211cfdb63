package projection_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/utils/projection"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func entry(id string, kind domain.EntryKind, from, to string, qty int64, offset time.Duration) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        id,
		Kind:           kind,
		PartID:         "part-1",
		Quantity:       decimal.NewFromInt(qty),
		FromLocationID: from,
		ToLocationID:   to,
		OccurredAt:     baseTime.Add(offset),
	}
}

func adjustment(id string, location string, change int64, offset time.Duration) domain.LedgerEntry {
	c := decimal.NewFromInt(change)
	return domain.LedgerEntry{
		EntryID:        id,
		Kind:           domain.Adjustment,
		PartID:         "part-1",
		Quantity:       c.Abs(),
		QuantityChange: c,
		ToLocationID:   location,
		Reason:         "cycle count",
		OccurredAt:     baseTime.Add(offset),
	}
}

func TestProjectReceiptsAndConsumption(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("e1", domain.Receipt, "", "wh-1", 100, 0),
		entry("e2", domain.Receipt, "", "wh-1", 50, time.Minute),
		entry("e3", domain.Consumption, "wh-1", "", 30, 2*time.Minute),
	}

	total, err := projection.Project("wh-1", entries)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(120)), "got %s", total)
}

func TestProjectTransferLegs(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("e1", domain.Receipt, "", "wh-1", 80, 0),
		entry("e2", domain.Transfer, "wh-1", "", 30, time.Minute),
		entry("e3", domain.Transfer, "", "wh-2", 30, time.Minute),
	}

	source, err := projection.Project("wh-1", entries)
	require.NoError(t, err)
	assert.True(t, source.Equal(decimal.NewFromInt(50)), "got %s", source)

	dest, err := projection.Project("wh-2", entries)
	require.NoError(t, err)
	assert.True(t, dest.Equal(decimal.NewFromInt(30)), "got %s", dest)
}

func TestProjectAdjustmentAppliesSignedChange(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("e1", domain.Receipt, "", "wh-1", 100, 0),
		adjustment("e2", "wh-1", -12, time.Minute),
		adjustment("e3", "wh-1", 5, 2*time.Minute),
	}

	total, err := projection.Project("wh-1", entries)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(93)), "got %s", total)
}

func TestProjectExactDepletionToZero(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry("e1", domain.Receipt, "", "wh-1", 40, 0),
		entry("e2", domain.Consumption, "wh-1", "", 40, time.Minute),
	}

	total, err := projection.Project("wh-1", entries)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestProjectNegativeIntermediateFails(t *testing.T) {
	// The final total would be positive, but history passes through a
	// negative point, which means an entry is missing or misattributed.
	entries := []domain.LedgerEntry{
		entry("e1", domain.Consumption, "wh-1", "", 10, 0),
		entry("e2", domain.Receipt, "", "wh-1", 100, time.Minute),
	}

	_, err := projection.Project("wh-1", entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNegativeStock)
}

func TestProjectSortsByCommitOrder(t *testing.T) {
	// Same entries in scrambled input order must fold identically.
	ordered := []domain.LedgerEntry{
		entry("e1", domain.Receipt, "", "wh-1", 10, 0),
		entry("e2", domain.Consumption, "wh-1", "", 5, time.Minute),
		entry("e3", domain.Receipt, "", "wh-1", 7, 2*time.Minute),
	}
	scrambled := []domain.LedgerEntry{ordered[2], ordered[0], ordered[1]}

	want, err := projection.Project("wh-1", ordered)
	require.NoError(t, err)
	got, err := projection.Project("wh-1", scrambled)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestProjectTieBreaksOnEntryID(t *testing.T) {
	// Two entries with identical timestamps order by entry ID, so a
	// receipt with the lower ID folds before the consumption that needs it.
	entries := []domain.LedgerEntry{
		entry("b-consume", domain.Consumption, "wh-1", "", 10, 0),
		entry("a-receive", domain.Receipt, "", "wh-1", 10, 0),
	}

	total, err := projection.Project("wh-1", entries)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestProjectEmptyHistoryIsZero(t *testing.T) {
	total, err := projection.Project("wh-1", nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestProjectUnknownKindFails(t *testing.T) {
	entries := []domain.LedgerEntry{
		{EntryID: "e1", Kind: "SHRINKAGE", PartID: "part-1", OccurredAt: baseTime},
	}

	_, err := projection.Project("wh-1", entries)
	require.Error(t, err)
}

func TestSignedContributionIgnoresOtherLocations(t *testing.T) {
	e := entry("e1", domain.Receipt, "", "wh-2", 25, 0)

	c, err := projection.SignedContribution("wh-1", e)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}
