package rates

import (
	"github.com/google/uuid"
)

// Override resolution walks a fixed priority chain per scalar:
// season beats market, market beats the room type's own value. The two
// scalars are resolved independently; a season may override the pricing
// type without touching the minimum adults.
//
// Resolution never fails: a missing room type, market or season simply
// leaves the scalar at its default. Callers must re-resolve whenever the
// room list, market or season selection changes; results are
// selection-dependent and must not be cached across selections.

// EffectivePricingType resolves the pricing type in effect for a room
// under the given market and optional season.
func EffectivePricingType(rt *RoomType, market *Market, season *Season) PricingType {
	value := PricingTypeUnit
	if rt != nil && rt.PricingType.IsValid() {
		value = rt.PricingType
	}
	roomID := roomTypeID(rt)

	if market != nil {
		if o, ok := market.PricingOverrides.Find(roomID); ok && o.UsePricingTypeOverride && o.PricingType.IsValid() {
			value = o.PricingType
		}
	}
	if season != nil {
		if o, ok := season.PricingOverrides.Find(roomID); ok && o.UsePricingTypeOverride && o.PricingType.IsValid() {
			value = o.PricingType
		}
	}
	return value
}

// EffectiveMinAdults resolves the minimum adult occupancy in effect for a
// room under the given market and optional season.
func EffectiveMinAdults(rt *RoomType, market *Market, season *Season) int {
	value := 1
	if rt != nil && rt.MinAdults >= 1 {
		value = rt.MinAdults
	}
	roomID := roomTypeID(rt)

	if market != nil {
		if o, ok := market.PricingOverrides.Find(roomID); ok && o.UseMinAdultsOverride && o.MinAdults >= 1 {
			value = o.MinAdults
		}
	}
	if season != nil {
		if o, ok := season.PricingOverrides.Find(roomID); ok && o.UseMinAdultsOverride && o.MinAdults >= 1 {
			value = o.MinAdults
		}
	}
	return value
}

// EffectiveUseMultipliers reports whether the room's multiplier table is in
// effect. Multipliers only apply when the effective pricing type is
// per_person; the flag itself is not overridable per market or season.
func EffectiveUseMultipliers(rt *RoomType, market *Market, season *Season) bool {
	if rt == nil {
		return false
	}
	return rt.UseMultipliers && EffectivePricingType(rt, market, season) == PricingTypePerPerson
}

// EffectiveChildAgeGroups resolves the child age configuration used for
// occupancy-combination labels: the season's, else the market's.
func EffectiveChildAgeGroups(market *Market, season *Season) ChildAgeGroupList {
	if season != nil && len(season.ChildAgeGroups) > 0 {
		return season.ChildAgeGroups
	}
	if market != nil && len(market.ChildAgeGroups) > 0 {
		return market.ChildAgeGroups
	}
	return nil
}

func roomTypeID(rt *RoomType) uuid.UUID {
	if rt == nil {
		return uuid.Nil
	}
	return rt.ID
}
