package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/core/services"
	"github.com/partbin/stockledger/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedger   *MockLedgerRepository
	mockStock    *MockStockSvc
	mockPart     *MockPartSvc
	mockLocation *MockLocationSvc
	service      portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerRepository)
	suite.mockStock = new(MockStockSvc)
	suite.mockPart = new(MockPartSvc)
	suite.mockLocation = new(MockLocationSvc)
	suite.service = services.NewLedgerService(suite.mockLedger, suite.mockStock, suite.mockPart, suite.mockLocation)
}

func (suite *LedgerServiceTestSuite) TestRecordReceipt_Success() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{
		PartID:       "part-1",
		ToLocationID: "wh-1",
		Quantity:     decimal.NewFromInt(10),
	}

	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-1").Return(activeLocation("wh-1"), nil).Once()
	suite.mockLedger.On("AppendEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e.Kind == domain.Receipt && e.ToLocationID == "wh-1" && e.Quantity.Equal(req.Quantity) && e.CreatedBy == "actor-1"
	})).Return(nil).Once()
	suite.mockStock.On("Invalidate", ctx, "wh-1", "part-1").Return(nil).Once()

	entry, err := suite.service.RecordReceipt(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.Receipt, entry.Kind)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockStock.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordReceipt_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{PartID: "part-1", ToLocationID: "wh-1", Quantity: decimal.Zero}

	entry, err := suite.service.RecordReceipt(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordReceipt_UnknownPart() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{PartID: "nope", ToLocationID: "wh-1", Quantity: decimal.NewFromInt(1)}

	suite.mockPart.On("GetPartByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.RecordReceipt(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordReceipt_InactiveLocation() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{PartID: "part-1", ToLocationID: "wh-closed", Quantity: decimal.NewFromInt(1)}

	closed := activeLocation("wh-closed")
	closed.IsActive = false
	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-closed").Return(closed, nil).Once()

	entry, err := suite.service.RecordReceipt(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordConsumption_InsufficientStock() {
	ctx := context.Background()
	req := dto.CreateConsumptionRequest{
		PartID:         "part-1",
		FromLocationID: "wh-1",
		Quantity:       decimal.NewFromInt(99),
	}

	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-1").Return(activeLocation("wh-1"), nil).Once()
	suite.mockLedger.On("AppendEntry", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(apperrors.ErrInsufficientStock).Once()

	entry, err := suite.service.RecordConsumption(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	// Nothing committed, nothing to invalidate.
	suite.mockStock.AssertNotCalled(suite.T(), "Invalidate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordConsumption_Success() {
	ctx := context.Background()
	req := dto.CreateConsumptionRequest{
		PartID:         "part-1",
		FromLocationID: "wh-1",
		Quantity:       decimal.NewFromInt(5),
	}

	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-1").Return(activeLocation("wh-1"), nil).Once()
	suite.mockLedger.On("AppendEntry", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
		return e.Kind == domain.Consumption && e.FromLocationID == "wh-1" && e.ToLocationID == ""
	})).Return(nil).Once()
	suite.mockStock.On("Invalidate", ctx, "wh-1", "part-1").Return(nil).Once()

	entry, err := suite.service.RecordConsumption(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockStock.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordConsumption_InvalidateFailureFallsBackToRefresh() {
	ctx := context.Background()
	req := dto.CreateConsumptionRequest{
		PartID:         "part-1",
		FromLocationID: "wh-1",
		Quantity:       decimal.NewFromInt(5),
	}

	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-1").Return(activeLocation("wh-1"), nil).Once()
	suite.mockLedger.On("AppendEntry", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil).Once()
	suite.mockStock.On("Invalidate", ctx, "wh-1", "part-1").Return(apperrors.ErrInternal).Once()
	suite.mockStock.On("Refresh", ctx, "wh-1", "part-1").Return(&domain.StockLevel{}, nil).Once()

	entry, err := suite.service.RecordConsumption(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockStock.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordReceipt_CacheUnreachableSurfacesStaleError() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{
		PartID:       "part-1",
		ToLocationID: "wh-1",
		Quantity:     decimal.NewFromInt(5),
	}

	suite.mockPart.On("GetPartByID", ctx, "part-1").Return(activePart("part-1"), nil).Once()
	suite.mockLocation.On("GetLocationByID", ctx, "wh-1").Return(activeLocation("wh-1"), nil).Once()
	suite.mockLedger.On("AppendEntry", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(nil).Once()
	suite.mockStock.On("Invalidate", ctx, "wh-1", "part-1").Return(apperrors.ErrInternal).Once()
	suite.mockStock.On("Refresh", ctx, "wh-1", "part-1").Return(nil, apperrors.ErrInternal).Once()

	entry, err := suite.service.RecordReceipt(ctx, req, "actor-1")

	// The entry committed; the caller learns the cache is stale and must
	// not retry the write.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCacheStale)
	suite.Require().NotNil(entry)
}

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	suite.mockLedger.On("ListEntriesForKey", ctx, "wh-1", "part-1", 50, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, "wh-1", "part-1", dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	suite.mockLedger.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetEntry(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
