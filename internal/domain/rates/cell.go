package rates

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateCell is the in-memory editing unit for one (room type, meal plan)
// pair. Exactly one field group is authoritative per cell, selected by the
// cell's pricing type and the room's multiplier flag:
//
//	unit                  -> PricePerNight and the flat extras
//	per_person (standard) -> OccupancyPricing table
//	per_person multiplier -> PricePerNight reinterpreted as the table base price
//
// NormalizeForPersist zeroes the non-authoritative groups so stale edits
// never leak into a persisted record.
type RateCell struct {
	PricePerNight     decimal.Decimal
	ExtraAdult        decimal.Decimal
	ExtraInfant       decimal.Decimal
	SingleSupplement  decimal.Decimal
	ChildOrderPricing DecimalSlice
	OccupancyPricing  OccupancyMap
	// PricingType is a snapshot of the effective type at seed time, so a
	// later override change does not silently reinterpret entered values.
	PricingType PricingType
}

// NewRateCell seeds a zeroed cell sized to the room's child-slot count,
// with every occupancy key present and zero.
func NewRateCell(rt *RoomType, effective PricingType) *RateCell {
	maxChildren := rt.EffectiveMaxChildren()

	children := make(DecimalSlice, maxChildren)
	for i := range children {
		children[i] = decimal.Zero
	}

	return &RateCell{
		PricePerNight:     decimal.Zero,
		ExtraAdult:        decimal.Zero,
		ExtraInfant:       decimal.Zero,
		SingleSupplement:  decimal.Zero,
		ChildOrderPricing: children,
		OccupancyPricing:  NewOccupancyMap(),
		PricingType:       effective,
	}
}

// HasUsablePrice reports whether the cell carries enough pricing to be
// persisted under the given effective model.
//
// For the standard per-person table both the lowest allowed occupancy and
// the one above it must be priced; a table with a single priced occupancy
// is rejected to avoid publishing an unusable table.
func (c *RateCell) HasUsablePrice(effective PricingType, useMultipliers bool, minAdults int) bool {
	if c == nil {
		return false
	}

	if effective == PricingTypePerPerson && !useMultipliers {
		return c.occupancyPriced(minAdults) && c.occupancyPriced(minAdults+1)
	}

	// unit, and per_person with multipliers where PricePerNight is the
	// multiplier table's base price
	return c.PricePerNight.IsPositive()
}

func (c *RateCell) occupancyPriced(count int) bool {
	if c.OccupancyPricing == nil {
		return false
	}
	price, ok := c.OccupancyPricing[count]
	return ok && price.IsPositive()
}

// NormalizeForPersist zeroes every field belonging to variants other than
// the effective one, returning the cell for chaining.
func (c *RateCell) NormalizeForPersist(effective PricingType, useMultipliers bool) *RateCell {
	switch {
	case effective == PricingTypePerPerson && useMultipliers:
		// PricePerNight stays: it is the multiplier base price. Everything
		// derived per occupancy is computed downstream from the table.
		c.ExtraAdult = decimal.Zero
		c.ExtraInfant = decimal.Zero
		c.SingleSupplement = decimal.Zero
		c.zeroChildren()
		c.OccupancyPricing = NewOccupancyMap()
	case effective == PricingTypePerPerson:
		c.PricePerNight = decimal.Zero
		c.ExtraAdult = decimal.Zero
		c.SingleSupplement = decimal.Zero
	default:
		c.OccupancyPricing = NewOccupancyMap()
	}
	return c
}

func (c *RateCell) zeroChildren() {
	for i := range c.ChildOrderPricing {
		c.ChildOrderPricing[i] = decimal.Zero
	}
}

// Clone returns a deep copy of the cell
func (c *RateCell) Clone() *RateCell {
	if c == nil {
		return nil
	}
	clone := *c
	clone.ChildOrderPricing = make(DecimalSlice, len(c.ChildOrderPricing))
	copy(clone.ChildOrderPricing, c.ChildOrderPricing)
	clone.OccupancyPricing = make(OccupancyMap, len(c.OccupancyPricing))
	for k, v := range c.OccupancyPricing {
		clone.OccupancyPricing[k] = v
	}
	return &clone
}

// CellGrid is the two-level (room type -> meal plan) container of editing
// cells. Lookups on absent keys return nil instead of panicking, and
// insertion creates the inner level on demand.
type CellGrid struct {
	cells map[uuid.UUID]map[uuid.UUID]*RateCell
}

// NewCellGrid creates an empty grid
func NewCellGrid() *CellGrid {
	return &CellGrid{cells: make(map[uuid.UUID]map[uuid.UUID]*RateCell)}
}

// Get returns the cell for the pair, or nil when absent
func (g *CellGrid) Get(roomTypeID, mealPlanID uuid.UUID) *RateCell {
	inner, ok := g.cells[roomTypeID]
	if !ok {
		return nil
	}
	return inner[mealPlanID]
}

// Put stores the cell for the pair, creating the room level on demand
func (g *CellGrid) Put(roomTypeID, mealPlanID uuid.UUID, cell *RateCell) {
	inner, ok := g.cells[roomTypeID]
	if !ok {
		inner = make(map[uuid.UUID]*RateCell)
		g.cells[roomTypeID] = inner
	}
	inner[mealPlanID] = cell
}

// Len returns the number of cells stored
func (g *CellGrid) Len() int {
	n := 0
	for _, inner := range g.cells {
		n += len(inner)
	}
	return n
}
