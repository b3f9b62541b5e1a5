package rates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/stretchr/testify/mock"
)

// MockRoomTypeRepository is a mock implementation of RoomTypeRepository
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

// MockMealPlanRepository is a mock implementation of MealPlanRepository
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

// MockMarketRepository is a mock implementation of MarketRepository
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

// MockSeasonRepository is a mock implementation of SeasonRepository
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

// MockRateRepository is a mock implementation of RateRepository
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

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
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
