package rates

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRatePatch_HasAnyPriceValue_Unit(t *testing.T) {
	assert.False(t, RatePatch{}.HasAnyPriceValue(PricingTypeUnit, false))

	assert.True(t, RatePatch{PricePerNight: decPtr("100")}.HasAnyPriceValue(PricingTypeUnit, false))
	assert.True(t, RatePatch{SingleSupplement: decPtr("10")}.HasAnyPriceValue(PricingTypeUnit, false))
	assert.True(t, RatePatch{
		ChildOrderPricing: map[int]decimal.Decimal{0: decimal.RequireFromString("5")},
	}.HasAnyPriceValue(PricingTypeUnit, false))

	// an explicit zero is a requested change, not an unset field
	assert.True(t, RatePatch{PricePerNight: decPtr("0")}.HasAnyPriceValue(PricingTypeUnit, false))
}

func TestRatePatch_HasAnyPriceValue_StandardPerPerson(t *testing.T) {
	// a flat price is irrelevant under the standard per-person model
	assert.False(t, RatePatch{PricePerNight: decPtr("100")}.HasAnyPriceValue(PricingTypePerPerson, false))

	assert.True(t, RatePatch{
		OccupancyPricing: map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
	}.HasAnyPriceValue(PricingTypePerPerson, false))
	assert.True(t, RatePatch{ExtraInfant: decPtr("5")}.HasAnyPriceValue(PricingTypePerPerson, false))
}

func TestRatePatch_HasAnyPriceValue_Multiplier(t *testing.T) {
	// only the base price qualifies the multiplier variant
	assert.False(t, RatePatch{
		OccupancyPricing: map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
	}.HasAnyPriceValue(PricingTypePerPerson, true))

	assert.True(t, RatePatch{PricePerNight: decPtr("80")}.HasAnyPriceValue(PricingTypePerPerson, true))
}

func TestRatePatch_NormalizedForModel_StandardPerPerson(t *testing.T) {
	patch := RatePatch{
		PricePerNight:    decPtr("100"),
		ExtraAdult:       decPtr("20"),
		SingleSupplement: decPtr("30"),
		ExtraInfant:      decPtr("5"),
		OccupancyPricing: map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
	}

	out := patch.NormalizedForModel(PricingTypePerPerson, false)

	assert.Equal(t, PricingTypePerPerson, out.PricingType)
	assert.False(t, out.UseMultipliers)
	assert.True(t, out.PricePerNight.IsZero())
	assert.True(t, out.ExtraAdult.IsZero())
	assert.True(t, out.SingleSupplement.IsZero())
	assert.True(t, out.ExtraInfant.Equal(decimal.RequireFromString("5")))
	assert.Len(t, out.OccupancyPricing, 1)
	// the source patch is untouched
	assert.True(t, patch.PricePerNight.Equal(decimal.RequireFromString("100")))
}

func TestRatePatch_NormalizedForModel_Multiplier(t *testing.T) {
	patch := RatePatch{
		PricePerNight:     decPtr("80"),
		ExtraInfant:       decPtr("5"),
		ChildOrderPricing: map[int]decimal.Decimal{0: decimal.RequireFromString("10")},
		OccupancyPricing:  map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
	}

	out := patch.NormalizedForModel(PricingTypePerPerson, true)

	assert.True(t, out.UseMultipliers)
	assert.True(t, out.PricePerNight.Equal(decimal.RequireFromString("80")))
	assert.True(t, out.ExtraInfant.IsZero())
	assert.Nil(t, out.ChildOrderPricing)
	assert.Nil(t, out.OccupancyPricing)
	assert.True(t, out.ClearChildOrderPricing)
	assert.True(t, out.ClearOccupancyPricing)
}

func TestRatePatch_NormalizedForModel_Unit(t *testing.T) {
	patch := RatePatch{
		PricePerNight:    decPtr("150"),
		OccupancyPricing: map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
	}

	out := patch.NormalizedForModel(PricingTypeUnit, false)

	assert.True(t, out.PricePerNight.Equal(decimal.RequireFromString("150")))
	assert.Nil(t, out.OccupancyPricing)
	assert.True(t, out.ClearOccupancyPricing)
}

func TestRatePatch_Restrictions(t *testing.T) {
	stop := true
	seven := 7
	patch := RatePatch{
		PricePerNight: decPtr("100"),
		StopSale:      &stop,
		MinStay:       &seven,
	}

	assert.True(t, patch.HasAnyRestriction())

	restr := patch.RestrictionsOnly()
	assert.Nil(t, restr.PricePerNight)
	assert.Equal(t, &stop, restr.StopSale)
	assert.Equal(t, &seven, restr.MinStay)
	assert.False(t, RatePatch{}.HasAnyRestriction())
}

func TestRatePatch_ApplyTo(t *testing.T) {
	record := &RateRecord{
		PricePerNight:     decimal.RequireFromString("100"),
		ExtraAdult:        decimal.RequireFromString("20"),
		ChildOrderPricing: DecimalSlice{decimal.RequireFromString("10")},
		OccupancyPricing:  NewOccupancyMap(),
		Restrictions:      Restrictions{MinStay: 3},
	}

	stop := true
	patch := RatePatch{
		PricePerNight:     decPtr("150"),
		ChildOrderPricing: map[int]decimal.Decimal{1: decimal.RequireFromString("15")},
		OccupancyPricing:  map[int]decimal.Decimal{2: decimal.RequireFromString("60")},
		StopSale:          &stop,
	}
	patch.ApplyTo(record)

	assert.True(t, record.PricePerNight.Equal(decimal.RequireFromString("150")))
	// unset fields stay untouched
	assert.True(t, record.ExtraAdult.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, 3, record.MinStay)
	assert.True(t, record.StopSale)

	// a sparse child entry grows the slice, preserving earlier orders
	assert.Len(t, record.ChildOrderPricing, 2)
	assert.True(t, record.ChildOrderPricing[0].Equal(decimal.RequireFromString("10")))
	assert.True(t, record.ChildOrderPricing[1].Equal(decimal.RequireFromString("15")))
	assert.True(t, record.OccupancyPricing[2].Equal(decimal.RequireFromString("60")))
}

func TestRatePatch_ApplyTo_ClearFlags(t *testing.T) {
	occ := NewOccupancyMap()
	occ[2] = decimal.RequireFromString("60")
	record := &RateRecord{
		ChildOrderPricing: DecimalSlice{decimal.RequireFromString("10")},
		OccupancyPricing:  occ,
	}

	RatePatch{ClearChildOrderPricing: true, ClearOccupancyPricing: true}.ApplyTo(record)

	assert.True(t, record.ChildOrderPricing[0].IsZero())
	assert.True(t, record.OccupancyPricing[2].IsZero())
}

func TestDistinctDates(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	roomA, roomB := uuid.New(), uuid.New()
	meal := uuid.New()

	cells := []CellRef{
		{Date: day2, RoomTypeID: roomA, MealPlanID: meal},
		{Date: day1, RoomTypeID: roomA, MealPlanID: meal},
		{Date: day1, RoomTypeID: roomB, MealPlanID: meal},
	}

	dates := DistinctDates(cells)

	assert.Equal(t, []time.Time{day1, day2}, dates)
}

func TestExpandPair(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	room, meal := uuid.New(), uuid.New()

	refs := ExpandPair([]time.Time{day1, day2}, room, meal)

	assert.Len(t, refs, 2)
	assert.Equal(t, day1, refs[0].Date)
	assert.Equal(t, room, refs[0].RoomTypeID)
	assert.Equal(t, meal, refs[1].MealPlanID)
}
