package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/dto"
	"github.com/partbin/stockledger/internal/handlers"
	"github.com/partbin/stockledger/internal/middleware"
)

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) GetStock(ctx context.Context, locationID, partID string) (*domain.StockLevel, bool, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.StockLevel), args.Bool(1), args.Error(2)
}
func (m *MockStockService) GetStockBatch(ctx context.Context, keys []domain.StockKey) ([]domain.StockLevel, []bool, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.StockLevel), args.Get(1).([]bool), args.Error(2)
}
func (m *MockStockService) ProjectStock(ctx context.Context, locationID, partID string) (decimal.Decimal, error) {
	args := m.Called(ctx, locationID, partID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockStockService) Refresh(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	args := m.Called(ctx, locationID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLevel), args.Error(1)
}
func (m *MockStockService) Invalidate(ctx context.Context, locationID, partID string) error {
	args := m.Called(ctx, locationID, partID)
	return args.Error(0)
}
func (m *MockStockService) RebuildAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

// --- Test Suite ---
type StockHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockStockService *MockStockService
}

func (suite *StockHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	suite.router = gin.New()
	suite.mockStockService = new(MockStockService)

	noLimit := func(c *gin.Context) { c.Next() }
	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterStockRoutes(v1, noLimit, suite.mockStockService)
}

func (suite *StockHandlerTestSuite) serve(method, url string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "operator-1")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *StockHandlerTestSuite) TestGetStock_ServedFromCache() {
	level := &domain.StockLevel{
		LocationID: "wh-1",
		PartID:     "part-1",
		Quantity:   decimal.NewFromInt(42),
		ComputedAt: time.Now().UTC(),
		Version:    3,
	}
	suite.mockStockService.On("GetStock", mock.Anything, "wh-1", "part-1").
		Return(level, true, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/stock/wh-1/part-1", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StockResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("wh-1", resp.LocationID)
	suite.Equal("part-1", resp.PartID)
	suite.True(resp.Quantity.Equal(decimal.NewFromInt(42)))
	suite.Equal("cache", resp.Source)
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestGetStock_RefreshedFromLedger() {
	level := &domain.StockLevel{
		LocationID: "wh-1",
		PartID:     "part-1",
		Quantity:   decimal.NewFromInt(7),
	}
	suite.mockStockService.On("GetStock", mock.Anything, "wh-1", "part-1").
		Return(level, false, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/stock/wh-1/part-1", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StockResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ledger", resp.Source)
}

func (suite *StockHandlerTestSuite) TestGetStock_CorruptHistoryIsIntegrityFault() {
	suite.mockStockService.On("GetStock", mock.Anything, "wh-1", "part-1").
		Return(nil, false, apperrors.ErrNegativeStock).Once()

	w := suite.serve(http.MethodGet, "/api/v1/stock/wh-1/part-1", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "reconcile")
}

func (suite *StockHandlerTestSuite) TestGetStockBatch_Success() {
	levels := []domain.StockLevel{
		{LocationID: "wh-1", PartID: "part-1", Quantity: decimal.NewFromInt(10)},
		{LocationID: "wh-2", PartID: "part-1", Quantity: decimal.NewFromInt(5)},
	}
	suite.mockStockService.On("GetStockBatch", mock.Anything, mock.MatchedBy(func(keys []domain.StockKey) bool {
		return len(keys) == 2 && keys[0].LocationID == "wh-1" && keys[1].LocationID == "wh-2"
	})).Return(levels, []bool{true, false}, nil).Once()

	body := `{"keys":[{"locationID":"wh-1","partID":"part-1"},{"locationID":"wh-2","partID":"part-1"}]}`
	w := suite.serve(http.MethodPost, "/api/v1/stock/batch", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BatchStockResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Levels, 2)
	suite.Equal("cache", resp.Levels[0].Source)
	suite.Equal("ledger", resp.Levels[1].Source)
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestGetStockBatch_EmptyKeysRejected() {
	w := suite.serve(http.MethodPost, "/api/v1/stock/batch", `{"keys":[]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStockService.AssertNotCalled(suite.T(), "GetStockBatch")
}

func (suite *StockHandlerTestSuite) TestRefresh_Success() {
	level := &domain.StockLevel{
		LocationID: "wh-1",
		PartID:     "part-1",
		Quantity:   decimal.NewFromInt(13),
		Version:    4,
	}
	suite.mockStockService.On("Refresh", mock.Anything, "wh-1", "part-1").
		Return(level, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/stock/wh-1/part-1/refresh", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StockResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ledger", resp.Source)
	suite.True(resp.Quantity.Equal(decimal.NewFromInt(13)))
}

func (suite *StockHandlerTestSuite) TestRebuildAll_ReportsCount() {
	suite.mockStockService.On("RebuildAll", mock.Anything).Return(17, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/stock/refresh", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RebuildResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(17, resp.KeysRebuilt)
}

func (suite *StockHandlerTestSuite) TestMissingActorHeaderRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stock/wh-1/part-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStockService.AssertNotCalled(suite.T(), "GetStock")
}

func TestStockHandler(t *testing.T) {
	suite.Run(t, new(StockHandlerTestSuite))
}
