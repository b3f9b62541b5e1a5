package rates

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RatePatch is the sparse edit applied by a bulk update. A nil pointer or
// absent map key means "no change requested", which is distinct from an
// explicit zero: operators can zero a price on purpose, and an unset
// field must never be mistaken for that.
type RatePatch struct {
	// PricingType and UseMultipliers identify the effective model the
	// patch was normalized for. They are stamped by NormalizedForModel and
	// let the repository seed records for dates that have none yet; a
	// patch without them (the restriction-only path) never creates.
	PricingType    PricingType `json:"pricing_type,omitempty"`
	UseMultipliers bool        `json:"use_multipliers,omitempty"`

	PricePerNight    *decimal.Decimal `json:"price_per_night,omitempty"`
	ExtraAdult       *decimal.Decimal `json:"extra_adult,omitempty"`
	ExtraInfant      *decimal.Decimal `json:"extra_infant,omitempty"`
	SingleSupplement *decimal.Decimal `json:"single_supplement,omitempty"`

	// ChildOrderPricing is keyed by child order (0-based); OccupancyPricing
	// by occupancy count. Key presence marks the entry as set.
	ChildOrderPricing map[int]decimal.Decimal `json:"child_order_pricing,omitempty"`
	OccupancyPricing  map[int]decimal.Decimal `json:"occupancy_pricing,omitempty"`

	// Clear flags force the corresponding table to its empty default,
	// used when normalization rules a whole table variant-inappropriate.
	ClearChildOrderPricing bool `json:"clear_child_order_pricing,omitempty"`
	ClearOccupancyPricing  bool `json:"clear_occupancy_pricing,omitempty"`

	Allotment   *int `json:"allotment,omitempty"`
	MinStay     *int `json:"min_stay,omitempty"`
	MaxStay     *int `json:"max_stay,omitempty"`
	ReleaseDays *int `json:"release_days,omitempty"`

	StopSale          *bool `json:"stop_sale,omitempty"`
	SingleStop        *bool `json:"single_stop,omitempty"`
	ClosedToArrival   *bool `json:"closed_to_arrival,omitempty"`
	ClosedToDeparture *bool `json:"closed_to_departure,omitempty"`
}

// HasAnyPriceValue reports whether the patch carries at least one set
// price field relevant to the effective pricing model. Any single
// populated field qualifies the pair for a write; this deliberately does
// not apply the stricter two-point occupancy check used for full-sheet
// submission.
func (p RatePatch) HasAnyPriceValue(effective PricingType, useMultipliers bool) bool {
	switch {
	case effective == PricingTypePerPerson && useMultipliers:
		return p.PricePerNight != nil
	case effective == PricingTypePerPerson:
		return len(p.OccupancyPricing) > 0 || len(p.ChildOrderPricing) > 0 || p.ExtraInfant != nil
	default:
		return p.PricePerNight != nil || p.ExtraAdult != nil || p.ExtraInfant != nil ||
			p.SingleSupplement != nil || len(p.ChildOrderPricing) > 0
	}
}

// HasAnyRestriction reports whether the patch carries inventory or
// restriction fields
func (p RatePatch) HasAnyRestriction() bool {
	return p.Allotment != nil || p.MinStay != nil || p.MaxStay != nil || p.ReleaseDays != nil ||
		p.StopSale != nil || p.SingleStop != nil || p.ClosedToArrival != nil || p.ClosedToDeparture != nil
}

// NormalizedForModel returns a copy of the patch with every price field
// that does not belong to the effective pricing model forced to its
// zero/empty default, mirroring full-sheet normalization. Restriction
// fields pass through untouched.
func (p RatePatch) NormalizedForModel(effective PricingType, useMultipliers bool) RatePatch {
	out := p
	out.PricingType = effective
	out.UseMultipliers = useMultipliers
	zero := decimal.Zero

	switch {
	case effective == PricingTypePerPerson && useMultipliers:
		out.ExtraAdult = &zero
		out.ExtraInfant = &zero
		out.SingleSupplement = &zero
		out.ChildOrderPricing = nil
		out.ClearChildOrderPricing = true
		out.OccupancyPricing = nil
		out.ClearOccupancyPricing = true
	case effective == PricingTypePerPerson:
		out.PricePerNight = &zero
		out.ExtraAdult = &zero
		out.SingleSupplement = &zero
	default:
		out.OccupancyPricing = nil
		out.ClearOccupancyPricing = true
	}
	return out
}

// RestrictionsOnly returns a copy of the patch stripped of every price
// field, for the restriction-only fan-out path that bypasses per-pair
// pricing resolution.
func (p RatePatch) RestrictionsOnly() RatePatch {
	return RatePatch{
		Allotment:         p.Allotment,
		MinStay:           p.MinStay,
		MaxStay:           p.MaxStay,
		ReleaseDays:       p.ReleaseDays,
		StopSale:          p.StopSale,
		SingleStop:        p.SingleStop,
		ClosedToArrival:   p.ClosedToArrival,
		ClosedToDeparture: p.ClosedToDeparture,
	}
}

// ApplyTo writes the patch's set fields onto the record. Unset fields
// leave the record's values alone; sparse table entries merge into the
// existing tables unless the matching clear flag forces a reset first.
func (p RatePatch) ApplyTo(r *RateRecord) {
	if p.PricePerNight != nil {
		r.PricePerNight = *p.PricePerNight
	}
	if p.ExtraAdult != nil {
		r.ExtraAdult = *p.ExtraAdult
	}
	if p.ExtraInfant != nil {
		r.ExtraInfant = *p.ExtraInfant
	}
	if p.SingleSupplement != nil {
		r.SingleSupplement = *p.SingleSupplement
	}

	if p.ClearChildOrderPricing {
		for i := range r.ChildOrderPricing {
			r.ChildOrderPricing[i] = decimal.Zero
		}
	}
	for order, price := range p.ChildOrderPricing {
		if order < 0 {
			continue
		}
		for len(r.ChildOrderPricing) <= order {
			r.ChildOrderPricing = append(r.ChildOrderPricing, decimal.Zero)
		}
		r.ChildOrderPricing[order] = price
	}

	if p.ClearOccupancyPricing {
		r.OccupancyPricing = NewOccupancyMap()
	}
	for count, price := range p.OccupancyPricing {
		if count < MinOccupancyKey || count > MaxOccupancyKey {
			continue
		}
		if r.OccupancyPricing == nil {
			r.OccupancyPricing = NewOccupancyMap()
		}
		r.OccupancyPricing[count] = price
	}

	if p.Allotment != nil {
		r.Allotment = *p.Allotment
	}
	if p.MinStay != nil {
		r.MinStay = *p.MinStay
	}
	if p.MaxStay != nil {
		r.MaxStay = *p.MaxStay
	}
	if p.ReleaseDays != nil {
		r.ReleaseDays = *p.ReleaseDays
	}
	if p.StopSale != nil {
		r.StopSale = *p.StopSale
	}
	if p.SingleStop != nil {
		r.SingleStop = *p.SingleStop
	}
	if p.ClosedToArrival != nil {
		r.ClosedToArrival = *p.ClosedToArrival
	}
	if p.ClosedToDeparture != nil {
		r.ClosedToDeparture = *p.ClosedToDeparture
	}
}

// DistinctDates returns the deduplicated, sorted dates of the selection
func DistinctDates(cells []CellRef) []time.Time {
	seen := make(map[time.Time]struct{}, len(cells))
	dates := make([]time.Time, 0, len(cells))
	for _, c := range cells {
		d := c.Date.Truncate(24 * time.Hour)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ExpandPair builds one cell reference per date for a (room, meal plan)
// pair, covering every selected date
func ExpandPair(dates []time.Time, roomTypeID, mealPlanID uuid.UUID) []CellRef {
	refs := make([]CellRef, 0, len(dates))
	for _, d := range dates {
		refs = append(refs, CellRef{Date: d, RoomTypeID: roomTypeID, MealPlanID: mealPlanID})
	}
	return refs
}
