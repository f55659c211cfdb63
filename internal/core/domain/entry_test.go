package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
)

func validReceipt() domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      "e1",
		Kind:         domain.Receipt,
		PartID:       "part-1",
		Quantity:     decimal.NewFromInt(5),
		ToLocationID: "wh-1",
	}
}

func TestValidateReceipt(t *testing.T) {
	e := validReceipt()
	assert.NoError(t, e.Validate())

	noDest := validReceipt()
	noDest.ToLocationID = ""
	assert.ErrorIs(t, noDest.Validate(), apperrors.ErrValidation)

	zeroQty := validReceipt()
	zeroQty.Quantity = decimal.Zero
	assert.ErrorIs(t, zeroQty.Validate(), apperrors.ErrValidation)

	bothLocations := validReceipt()
	bothLocations.FromLocationID = "wh-2"
	assert.ErrorIs(t, bothLocations.Validate(), apperrors.ErrValidation)
}

func TestValidateConsumption(t *testing.T) {
	e := domain.LedgerEntry{
		EntryID:        "e1",
		Kind:           domain.Consumption,
		PartID:         "part-1",
		Quantity:       decimal.NewFromInt(3),
		FromLocationID: "wh-1",
	}
	assert.NoError(t, e.Validate())

	e.FromLocationID = ""
	assert.ErrorIs(t, e.Validate(), apperrors.ErrValidation)
}

func TestValidateTransferLegs(t *testing.T) {
	debit := domain.LedgerEntry{
		EntryID:         "e1",
		Kind:            domain.Transfer,
		PartID:          "part-1",
		Quantity:        decimal.NewFromInt(3),
		FromLocationID:  "wh-1",
		TransferGroupID: "tg-1",
	}
	assert.NoError(t, debit.Validate())

	credit := debit
	credit.EntryID = "e2"
	credit.FromLocationID = ""
	credit.ToLocationID = "wh-2"
	assert.NoError(t, credit.Validate())

	noGroup := debit
	noGroup.TransferGroupID = ""
	assert.ErrorIs(t, noGroup.Validate(), apperrors.ErrValidation)

	bothLocations := debit
	bothLocations.ToLocationID = "wh-2"
	assert.ErrorIs(t, bothLocations.Validate(), apperrors.ErrValidation)
}

func TestValidateAdjustment(t *testing.T) {
	e := domain.LedgerEntry{
		EntryID:        "e1",
		Kind:           domain.Adjustment,
		PartID:         "part-1",
		Quantity:       decimal.NewFromInt(4),
		QuantityChange: decimal.NewFromInt(-4),
		ToLocationID:   "wh-1",
		Reason:         "cycle count",
	}
	assert.NoError(t, e.Validate())

	noReason := e
	noReason.Reason = ""
	assert.ErrorIs(t, noReason.Validate(), apperrors.ErrValidation)

	mismatch := e
	mismatch.Quantity = decimal.NewFromInt(5)
	assert.ErrorIs(t, mismatch.Validate(), apperrors.ErrValidation)

	// Zero-delta adjustments are allowed: the operator confirmed the count.
	confirm := e
	confirm.Quantity = decimal.Zero
	confirm.QuantityChange = decimal.Zero
	assert.NoError(t, confirm.Validate())
}

func TestKeysPerKind(t *testing.T) {
	receipt := validReceipt()
	assert.Equal(t, []domain.StockKey{{LocationID: "wh-1", PartID: "part-1"}}, receipt.Keys())

	consumption := domain.LedgerEntry{Kind: domain.Consumption, PartID: "part-1", FromLocationID: "wh-2"}
	assert.Equal(t, []domain.StockKey{{LocationID: "wh-2", PartID: "part-1"}}, consumption.Keys())
}
