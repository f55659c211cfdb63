package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/partbin/stockledger/internal/core/domain"
	"github.com/partbin/stockledger/internal/dto"
)

// --- Mock LedgerRepositoryFacade ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) EntriesForKey(ctx context.Context, locationID, partID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesForKey(ctx context.Context, locationID, partID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, locationID, partID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) ListKeys(ctx context.Context) ([]domain.StockKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockKey), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) AppendTransferPair(ctx context.Context, debit, credit *domain.LedgerEntry) error {
	args := m.Called(ctx, debit, credit)
	return args.Error(0)
}

// --- Mock StockCacheRepository ---
type MockStockCacheRepository struct {
	mock.Mock
}

func (m *MockStockCacheRepository) Get(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLevel), args.Error(1)
}

func (m *MockStockCacheRepository) Put(ctx context.Context, level domain.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockCacheRepository) Invalidate(ctx context.Context, locationID, partID string) error {
	args := m.Called(ctx, locationID, partID)
	return args.Error(0)
}

func (m *MockStockCacheRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock StockSvcFacade ---
type MockStockSvc struct {
	mock.Mock
}

func (m *MockStockSvc) GetStock(ctx context.Context, locationID, partID string) (*domain.StockLevel, bool, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.StockLevel), args.Bool(1), args.Error(2)
}

func (m *MockStockSvc) GetStockBatch(ctx context.Context, keys []domain.StockKey) ([]domain.StockLevel, []bool, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.StockLevel), args.Get(1).([]bool), args.Error(2)
}

func (m *MockStockSvc) ProjectStock(ctx context.Context, locationID, partID string) (decimal.Decimal, error) {
	args := m.Called(ctx, locationID, partID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockSvc) Refresh(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLevel), args.Error(1)
}

func (m *MockStockSvc) Invalidate(ctx context.Context, locationID, partID string) error {
	args := m.Called(ctx, locationID, partID)
	return args.Error(0)
}

func (m *MockStockSvc) RebuildAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- Mock PartSvcFacade ---
type MockPartSvc struct {
	mock.Mock
}

func (m *MockPartSvc) CreatePart(ctx context.Context, req dto.CreatePartRequest, actorID string) (*domain.Part, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}

func (m *MockPartSvc) GetPartByID(ctx context.Context, partID string) (*domain.Part, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}

func (m *MockPartSvc) ListParts(ctx context.Context, limit int, offset int) ([]domain.Part, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *MockPartSvc) DeactivatePart(ctx context.Context, partID string, actorID string) error {
	args := m.Called(ctx, partID, actorID)
	return args.Error(0)
}

// --- Mock LocationSvcFacade ---
type MockLocationSvc struct {
	mock.Mock
}

func (m *MockLocationSvc) CreateLocation(ctx context.Context, req dto.CreateLocationRequest, actorID string) (*domain.Location, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationSvc) GetLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationSvc) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationSvc) DeactivateLocation(ctx context.Context, locationID string, actorID string) error {
	args := m.Called(ctx, locationID, actorID)
	return args.Error(0)
}

// activePart/activeLocation are the catalog fixtures the movement suites use.
func activePart(partID string) *domain.Part {
	return &domain.Part{PartID: partID, SKU: "SKU-" + partID, Name: "Part " + partID, Unit: "pcs", IsActive: true}
}

func activeLocation(locationID string) *domain.Location {
	return &domain.Location{LocationID: locationID, Code: "LOC-" + locationID, Name: "Location " + locationID, IsActive: true}
}
