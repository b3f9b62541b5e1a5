package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRateTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&rates.RoomType{}, &rates.MealPlan{}, &rates.Market{}, &rates.Season{}, &rates.RateRecord{})
	require.NoError(t, err)

	return db
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rateFixture struct {
	tenantID uuid.UUID
	hotelID  uuid.UUID
	marketID uuid.UUID
	roomID   uuid.UUID
	mealID   uuid.UUID
}

func newRateFixture(t *testing.T, db *gorm.DB) rateFixture {
	t.Helper()
	tenantID, hotelID := uuid.New(), uuid.New()

	market, err := rates.NewMarket(tenantID, hotelID, "UK", "United Kingdom", "GBP")
	require.NoError(t, err)
	require.NoError(t, db.Create(market).Error)

	return rateFixture{
		tenantID: tenantID,
		hotelID:  hotelID,
		marketID: market.ID,
		roomID:   uuid.New(),
		mealID:   uuid.New(),
	}
}

func (f rateFixture) record(t *testing.T, start, end time.Time, price string) *rates.RateRecord {
	t.Helper()
	cell := &rates.RateCell{
		PricePerNight:     decimal.RequireFromString(price),
		ChildOrderPricing: rates.DecimalSlice{decimal.Zero, decimal.Zero},
		OccupancyPricing:  rates.NewOccupancyMap(),
		PricingType:       rates.PricingTypeUnit,
	}
	record, err := rates.NewRateRecord(
		f.tenantID, f.hotelID, f.roomID, f.mealID, f.marketID,
		nil, start, end, "GBP", cell, false, rates.Restrictions{},
	)
	require.NoError(t, err)
	return record
}

func TestRateRepository_CreateAndGet(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	record := f.record(t, utcDate(2024, 6, 1), utcDate(2024, 6, 30), "120")
	require.NoError(t, repo.CreateRate(ctx, record))

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].PricePerNight.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "GBP", records[0].Currency)
}

func TestRateRepository_CreateRate_TruncatesOverlap(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	require.NoError(t, repo.CreateRate(ctx, f.record(t, utcDate(2024, 6, 1), utcDate(2024, 6, 30), "100")))
	// resubmission for the middle of the month wins over the old period
	require.NoError(t, repo.CreateRate(ctx, f.record(t, utcDate(2024, 6, 10), utcDate(2024, 6, 20), "150")))

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, utcDate(2024, 6, 1), records[0].StartDate)
	assert.Equal(t, utcDate(2024, 6, 9), records[0].EndDate)
	assert.True(t, records[0].PricePerNight.Equal(decimal.RequireFromString("100")))

	assert.Equal(t, utcDate(2024, 6, 10), records[1].StartDate)
	assert.Equal(t, utcDate(2024, 6, 20), records[1].EndDate)
	assert.True(t, records[1].PricePerNight.Equal(decimal.RequireFromString("150")))

	assert.Equal(t, utcDate(2024, 6, 21), records[2].StartDate)
	assert.Equal(t, utcDate(2024, 6, 30), records[2].EndDate)
	assert.True(t, records[2].PricePerNight.Equal(decimal.RequireFromString("100")))
}

func TestRateRepository_LatestRateDate(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	latest, err := repo.LatestRateDate(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, repo.CreateRate(ctx, f.record(t, utcDate(2024, 6, 1), utcDate(2024, 6, 30), "100")))
	require.NoError(t, repo.CreateRate(ctx, f.record(t, utcDate(2024, 7, 1), utcDate(2024, 7, 15), "110")))

	latest, err = repo.LatestRateDate(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, utcDate(2024, 7, 15), *latest)
}

func TestRateRepository_BulkUpdate_UpdatesExactDay(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	target := utcDate(2024, 6, 5)
	require.NoError(t, repo.CreateRate(ctx, f.record(t, target, target, "100")))

	price := decimal.RequireFromString("130")
	patch := rates.RatePatch{PricePerNight: &price}.NormalizedForModel(rates.PricingTypeUnit, false)

	result, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID,
		[]rates.CellRef{{Date: target, RoomTypeID: f.roomID, MealPlanID: f.mealID}}, patch)

	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{Updated: 1}, result)

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].PricePerNight.Equal(price))
}

func TestRateRepository_BulkUpdate_SplitsSpanningRecord(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	require.NoError(t, repo.CreateRate(ctx, f.record(t, utcDate(2024, 6, 1), utcDate(2024, 6, 10), "100")))

	price := decimal.RequireFromString("200")
	patch := rates.RatePatch{PricePerNight: &price}.NormalizedForModel(rates.PricingTypeUnit, false)

	target := utcDate(2024, 6, 5)
	result, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID,
		[]rates.CellRef{{Date: target, RoomTypeID: f.roomID, MealPlanID: f.mealID}}, patch)

	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{Split: 1}, result)

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// leading remainder keeps the old price
	assert.Equal(t, utcDate(2024, 6, 1), records[0].StartDate)
	assert.Equal(t, utcDate(2024, 6, 4), records[0].EndDate)
	assert.True(t, records[0].PricePerNight.Equal(decimal.RequireFromString("100")))

	// the carved day carries the patched price
	assert.Equal(t, target, records[1].StartDate)
	assert.Equal(t, target, records[1].EndDate)
	assert.True(t, records[1].PricePerNight.Equal(price))

	assert.Equal(t, utcDate(2024, 6, 6), records[2].StartDate)
	assert.Equal(t, utcDate(2024, 6, 10), records[2].EndDate)
	assert.True(t, records[2].PricePerNight.Equal(decimal.RequireFromString("100")))
}

func TestRateRepository_BulkUpdate_CreatesMissingDay(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	price := decimal.RequireFromString("90")
	patch := rates.RatePatch{PricePerNight: &price}.NormalizedForModel(rates.PricingTypeUnit, false)

	target := utcDate(2024, 8, 1)
	result, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID,
		[]rates.CellRef{{Date: target, RoomTypeID: f.roomID, MealPlanID: f.mealID}}, patch)

	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{Created: 1}, result)

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, target, records[0].StartDate)
	assert.Equal(t, target, records[0].EndDate)
	// currency comes from the market configuration
	assert.Equal(t, "GBP", records[0].Currency)
	assert.Equal(t, rates.PricingTypeUnit, records[0].PricingType)
	assert.True(t, records[0].PricePerNight.Equal(price))
}

func TestRateRepository_BulkUpdate_RestrictionPatchNeverCreates(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	stop := true
	patch := rates.RatePatch{StopSale: &stop}.RestrictionsOnly()

	result, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID,
		[]rates.CellRef{{Date: utcDate(2024, 8, 1), RoomTypeID: f.roomID, MealPlanID: f.mealID}}, patch)

	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{}, result)

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRateRepository_BulkUpdate_Reissue(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	f := newRateFixture(t, db)

	price := decimal.RequireFromString("90")
	patch := rates.RatePatch{PricePerNight: &price}.NormalizedForModel(rates.PricingTypeUnit, false)
	cells := []rates.CellRef{{Date: utcDate(2024, 8, 1), RoomTypeID: f.roomID, MealPlanID: f.mealID}}

	first, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID, cells, patch)
	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{Created: 1}, first)

	// the retry updates the day it created, leaving identical state behind
	second, err := repo.BulkUpdateByDates(ctx, f.tenantID, f.hotelID, f.marketID, cells, patch)
	require.NoError(t, err)
	assert.Equal(t, rates.BulkUpdateResult{Updated: 1}, second)

	records, err := repo.GetRates(ctx, f.tenantID, f.hotelID, f.marketID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRoomTypeRepository_RoundTrip(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRoomTypeRepository(db)
	ctx := context.Background()
	tenantID, hotelID := uuid.New(), uuid.New()

	rt, err := rates.NewRoomType(tenantID, hotelID, "STD", "Standard Room")
	require.NoError(t, err)
	rt.SetPriceAdjustment(decimal.RequireFromString("-10"))
	require.NoError(t, repo.Save(ctx, rt))

	found, err := repo.FindByID(ctx, tenantID, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, "STD", found.Code)
	assert.True(t, found.PriceAdjustment.Equal(decimal.RequireFromString("-10")))

	_, err = repo.FindByID(ctx, uuid.New(), rt.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRoomTypeRepository_FindByHotelOrdersBySortOrder(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormRoomTypeRepository(db)
	ctx := context.Background()
	tenantID, hotelID := uuid.New(), uuid.New()

	for i, code := range []string{"SUI", "STD", "DBL"} {
		rt, err := rates.NewRoomType(tenantID, hotelID, code, code)
		require.NoError(t, err)
		rt.SortOrder = 3 - i
		require.NoError(t, repo.Save(ctx, rt))
	}

	rooms, err := repo.FindByHotel(ctx, tenantID, hotelID)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, "DBL", rooms[0].Code)
	assert.Equal(t, "STD", rooms[1].Code)
	assert.Equal(t, "SUI", rooms[2].Code)
}

func TestMarketRepository_PersistsJSONColumns(t *testing.T) {
	db := setupRateTestDB(t)
	repo := NewGormMarketRepository(db)
	ctx := context.Background()
	tenantID, hotelID := uuid.New(), uuid.New()
	roomID := uuid.New()

	market, err := rates.NewMarket(tenantID, hotelID, "DE", "Germany", "EUR")
	require.NoError(t, err)
	market.SetPricingOverrides(rates.PricingOverrideList{
		{RoomTypeID: roomID, UsePricingTypeOverride: true, PricingType: rates.PricingTypePerPerson},
	})
	market.SetChildAgeGroups(rates.ChildAgeGroupList{{Code: "infant", MinAge: 0, MaxAge: 2}})
	require.NoError(t, repo.Save(ctx, market))

	found, err := repo.FindByID(ctx, tenantID, market.ID)
	require.NoError(t, err)
	require.Len(t, found.PricingOverrides, 1)
	assert.Equal(t, roomID, found.PricingOverrides[0].RoomTypeID)
	require.Len(t, found.ChildAgeGroups, 1)
	assert.Equal(t, "infant", found.ChildAgeGroups[0].Code)
}
