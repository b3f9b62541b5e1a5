package rates

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AdjustPrice applies the room adjustment followed by the meal-plan
// adjustment, rounding to cents after each step. The room percentage is
// always applied first; the intermediate rounding makes the order
// significant, so it must not be swapped.
func AdjustPrice(base, roomPct, mealPct decimal.Decimal) decimal.Decimal {
	afterRoom := base.Mul(decimal.NewFromInt(1).Add(roomPct.Div(oneHundred))).Round(2)
	afterMeal := afterRoom.Mul(decimal.NewFromInt(1).Add(mealPct.Div(oneHundred))).Round(2)
	return afterMeal
}

// PropagateRelative recomputes every non-base cell of the grid from the
// base cell, chaining the room's and meal plan's percentage adjustments.
//
// Rules:
//   - nothing happens unless the base cell's PricePerNight is positive
//   - the base cell itself is never overwritten
//   - only populated base fields spread; a zero base field leaves the
//     target's field untouched rather than zeroing it
//   - the extras reuse the same two percentages as the nightly price;
//     there is no separate adjustment axis for extras
//
// The propagation is a full recompute and is idempotent: running it twice
// with an unchanged base cell yields identical cells, since every target
// value is derived from the base value alone.
func PropagateRelative(grid *CellGrid, rooms []RoomType, meals []MealPlan, baseRoomID, baseMealPlanID uuid.UUID) {
	if grid == nil {
		return
	}
	base := grid.Get(baseRoomID, baseMealPlanID)
	if base == nil || !base.PricePerNight.IsPositive() {
		return
	}

	for i := range rooms {
		room := &rooms[i]
		for j := range meals {
			meal := &meals[j]
			if room.ID == baseRoomID && meal.ID == baseMealPlanID {
				continue
			}
			target := grid.Get(room.ID, meal.ID)
			if target == nil {
				continue
			}
			propagateCell(base, target, room.PriceAdjustment, meal.PriceAdjustment)
		}
	}
}

func propagateCell(base, target *RateCell, roomPct, mealPct decimal.Decimal) {
	target.PricePerNight = AdjustPrice(base.PricePerNight, roomPct, mealPct)

	if base.ExtraAdult.IsPositive() {
		target.ExtraAdult = AdjustPrice(base.ExtraAdult, roomPct, mealPct)
	}
	for i, price := range base.ChildOrderPricing {
		if !price.IsPositive() {
			continue
		}
		if i < len(target.ChildOrderPricing) {
			target.ChildOrderPricing[i] = AdjustPrice(price, roomPct, mealPct)
		}
	}
	if base.ExtraInfant.IsPositive() {
		target.ExtraInfant = AdjustPrice(base.ExtraInfant, roomPct, mealPct)
	}
	if base.SingleSupplement.IsPositive() {
		target.SingleSupplement = AdjustPrice(base.SingleSupplement, roomPct, mealPct)
	}
}

// FindBaseRoom returns the room flagged as base, if any. When several
// rooms carry the flag the first in sort order wins; single-base
// uniqueness is enforced at designation time by the application layer.
func FindBaseRoom(rooms []RoomType) (*RoomType, bool) {
	for i := range rooms {
		if rooms[i].IsBaseRoom {
			return &rooms[i], true
		}
	}
	return nil, false
}
