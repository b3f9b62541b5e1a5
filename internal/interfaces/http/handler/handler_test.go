package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRoomTypeRepository implements rates.RoomTypeRepository for testing
type MockRoomTypeRepository struct {
	mock.Mock
}

func (m *MockRoomTypeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.RoomType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rates.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.RoomType, error) {
	args := m.Called(ctx, tenantID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rates.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) Save(ctx context.Context, roomType *rates.RoomType) error {
	args := m.Called(ctx, roomType)
	return args.Error(0)
}

func (m *MockRoomTypeRepository) SaveBatch(ctx context.Context, roomTypes []*rates.RoomType) error {
	args := m.Called(ctx, roomTypes)
	return args.Error(0)
}

func (m *MockRoomTypeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockMealPlanRepository implements rates.MealPlanRepository for testing
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.MealPlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rates.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.MealPlan, error) {
	args := m.Called(ctx, tenantID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rates.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) Save(ctx context.Context, mealPlan *rates.MealPlan) error {
	args := m.Called(ctx, mealPlan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockMarketRepository implements rates.MarketRepository for testing
type MockMarketRepository struct {
	mock.Mock
}

func (m *MockMarketRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.Market, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rates.Market), args.Error(1)
}

func (m *MockMarketRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Market, error) {
	args := m.Called(ctx, tenantID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rates.Market), args.Error(1)
}

func (m *MockMarketRepository) Save(ctx context.Context, market *rates.Market) error {
	args := m.Called(ctx, market)
	return args.Error(0)
}

func (m *MockMarketRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockSeasonRepository implements rates.SeasonRepository for testing
type MockSeasonRepository struct {
	mock.Mock
}

func (m *MockSeasonRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.Season, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rates.Season), args.Error(1)
}

func (m *MockSeasonRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Season, error) {
	args := m.Called(ctx, tenantID, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rates.Season), args.Error(1)
}

func (m *MockSeasonRepository) Save(ctx context.Context, season *rates.Season) error {
	args := m.Called(ctx, season)
	return args.Error(0)
}

func (m *MockSeasonRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockRateRepository implements rates.RateRepository for testing
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) CreateRate(ctx context.Context, record *rates.RateRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRateRepository) GetRates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) ([]rates.RateRecord, error) {
	args := m.Called(ctx, tenantID, hotelID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rates.RateRecord), args.Error(1)
}

func (m *MockRateRepository) LatestRateDate(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, tenantID, hotelID, marketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRateRepository) BulkUpdateByDates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID, cells []rates.CellRef, patch rates.RatePatch) (rates.BulkUpdateResult, error) {
	args := m.Called(ctx, tenantID, hotelID, marketID, cells, patch)
	return args.Get(0).(rates.BulkUpdateResult), args.Error(1)
}

// MockIdempotencyStore implements shared.IdempotencyStore for testing
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// setupTestRouter builds a test engine with the given handlers registered
// under the versioned API prefix
func setupTestRouter(registrars ...interface{ RegisterRoutes(*gin.RouterGroup) }) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
	return engine
}

// doJSON performs a request with a JSON body against the test engine
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals a response body into the standard envelope
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// testRoom builds a room type fixture, optionally marked as base
func testRoom(t *testing.T, tenantID, hotelID uuid.UUID, code string, sortOrder int, base bool) rates.RoomType {
	t.Helper()
	rt, err := rates.NewRoomType(tenantID, hotelID, code, "Room "+code)
	require.NoError(t, err)
	rt.SortOrder = sortOrder
	if base {
		rt.MarkAsBase()
	}
	return *rt
}

// testMeal builds a meal plan fixture
func testMeal(t *testing.T, tenantID, hotelID uuid.UUID, code string, sortOrder int) rates.MealPlan {
	t.Helper()
	mp, err := rates.NewMealPlan(tenantID, hotelID, code, "Plan "+code)
	require.NoError(t, err)
	mp.SortOrder = sortOrder
	return *mp
}

// mustDate parses an ISO date or fails the test
func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := rates.ParseISODate(s)
	require.NoError(t, err)
	return d
}

// testMarket builds a market fixture
func testMarket(t *testing.T, tenantID, hotelID uuid.UUID) *rates.Market {
	t.Helper()
	market, err := rates.NewMarket(tenantID, hotelID, "UK", "United Kingdom", "GBP")
	require.NoError(t, err)
	return market
}
