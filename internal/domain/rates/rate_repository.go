package rates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CellRef identifies one (date, room type, meal plan) pricing cell
type CellRef struct {
	Date       time.Time `json:"date"`
	RoomTypeID uuid.UUID `json:"room_type_id"`
	MealPlanID uuid.UUID `json:"meal_plan_id"`
}

// BulkUpdateResult aggregates the outcome of an upsert fan-out. Split
// counts existing records whose date range had to be cut to make room for
// the updated dates.
type BulkUpdateResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Split   int `json:"split"`
}

// Add accumulates another result into this one
func (r *BulkUpdateResult) Add(other BulkUpdateResult) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Split += other.Split
}

// Total returns the total number of touched records
func (r BulkUpdateResult) Total() int {
	return r.Created + r.Updated + r.Split
}

// RateRepository defines the persistence contract for rate records.
// BulkUpdateByDates upserts at (date, room type, meal plan) granularity
// and must be safe to reissue: retried submissions with identical input
// leave the same state behind.
type RateRepository interface {
	// CreateRate persists one single-period record for a (room, meal plan) pair
	CreateRate(ctx context.Context, record *RateRecord) error

	// GetRates returns the records for a hotel and market
	GetRates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) ([]RateRecord, error)

	// LatestRateDate returns the most recent end date among a hotel's
	// records for the market, or nil when none exist
	LatestRateDate(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) (*time.Time, error)

	// BulkUpdateByDates applies the patch to every referenced cell,
	// creating, updating or splitting records as needed
	BulkUpdateByDates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID, cells []CellRef, patch RatePatch) (BulkUpdateResult, error)
}

// RoomTypeRepository defines the persistence contract for room types
type RoomTypeRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*RoomType, error)
	FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]RoomType, error)
	Save(ctx context.Context, roomType *RoomType) error
	SaveBatch(ctx context.Context, roomTypes []*RoomType) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// MealPlanRepository defines the persistence contract for meal plans
type MealPlanRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*MealPlan, error)
	FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]MealPlan, error)
	Save(ctx context.Context, mealPlan *MealPlan) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// MarketRepository defines the persistence contract for markets
type MarketRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Market, error)
	FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]Market, error)
	Save(ctx context.Context, market *Market) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SeasonRepository defines the persistence contract for seasons
type SeasonRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Season, error)
	FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]Season, error)
	Save(ctx context.Context, season *Season) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
