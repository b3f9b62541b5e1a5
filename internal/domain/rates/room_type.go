package rates

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoomType represents a sellable room category of a hotel.
// It is the aggregate root for room-level pricing configuration.
type RoomType struct {
	shared.TenantAggregateRoot
	HotelID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_room_type_hotel"`
	Code             string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_room_type_hotel_code,priority:2"`
	Name             string           `gorm:"type:varchar(200);not null"`
	PricingType      PricingType      `gorm:"type:varchar(20);not null;default:'unit'"`
	UseMultipliers   bool             `gorm:"not null;default:false"`
	MinAdults        int              `gorm:"not null;default:1"`
	MaxAdults        int              `gorm:"not null;default:2"`
	MaxChildren      int              `gorm:"not null;default:2"`
	CombinationTable CombinationTable `gorm:"type:jsonb"`
	PriceAdjustment  decimal.Decimal  `gorm:"type:decimal(8,4);not null;default:0"` // signed percent relative to the base room
	IsBaseRoom       bool             `gorm:"not null;default:false"`
	SortOrder        int              `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RoomType) TableName() string {
	return "room_types"
}

// NewRoomType creates a new room type with engine defaults: unit pricing,
// single-adult minimum, two child slots.
func NewRoomType(tenantID, hotelID uuid.UUID, code, name string) (*RoomType, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Room type code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Room type name cannot be empty")
	}

	rt := &RoomType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		Code:                strings.ToUpper(code),
		Name:                name,
		PricingType:         PricingTypeUnit,
		MinAdults:           1,
		MaxAdults:           2,
		MaxChildren:         DefaultMaxChildren,
		PriceAdjustment:     decimal.Zero,
	}

	rt.AddDomainEvent(NewRoomTypeCreatedEvent(rt))

	return rt, nil
}

// EffectiveMaxChildren returns the configured child-slot count, defaulting
// when unset so ChildOrderPricing buffers always have a defined length
func (rt *RoomType) EffectiveMaxChildren() int {
	if rt == nil || rt.MaxChildren <= 0 {
		return DefaultMaxChildren
	}
	return rt.MaxChildren
}

// SetPricingType changes the room's base pricing model
func (rt *RoomType) SetPricingType(pt PricingType, useMultipliers bool) error {
	if !pt.IsValid() {
		return shared.NewDomainError("INVALID_PRICING_TYPE", "Pricing type must be unit or per_person")
	}
	if useMultipliers && pt != PricingTypePerPerson {
		return shared.NewDomainError("INVALID_PRICING_TYPE", "Multiplier tables require per_person pricing")
	}

	rt.PricingType = pt
	rt.UseMultipliers = useMultipliers
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()

	rt.AddDomainEvent(NewRoomTypeUpdatedEvent(rt))

	return nil
}

// SetOccupancy updates the occupancy bounds
func (rt *RoomType) SetOccupancy(minAdults, maxAdults, maxChildren int) error {
	if minAdults < 1 {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Minimum adults must be at least 1")
	}
	if maxAdults < minAdults {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Maximum adults cannot be below minimum adults")
	}
	if maxChildren < 0 {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Maximum children cannot be negative")
	}

	rt.MinAdults = minAdults
	rt.MaxAdults = maxAdults
	rt.MaxChildren = maxChildren
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()

	rt.AddDomainEvent(NewRoomTypeUpdatedEvent(rt))

	return nil
}

// SetPriceAdjustment sets the signed percentage applied when prices are
// derived from the base room
func (rt *RoomType) SetPriceAdjustment(pct decimal.Decimal) {
	rt.PriceAdjustment = pct
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()

	rt.AddDomainEvent(NewRoomTypeUpdatedEvent(rt))
}

// SetCombinationTable replaces the multiplier combination table
func (rt *RoomType) SetCombinationTable(table CombinationTable) error {
	for _, entry := range table {
		if entry.Adults < 1 {
			return shared.NewDomainError("INVALID_COMBINATION", "Combination entries require at least one adult")
		}
	}

	rt.CombinationTable = table
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()

	rt.AddDomainEvent(NewRoomTypeUpdatedEvent(rt))

	return nil
}

// MarkAsBase flags this room as the hotel's base room. Uniqueness across
// the hotel is enforced by the application service, which clears the flag
// on sibling rooms in the same save.
func (rt *RoomType) MarkAsBase() {
	if rt.IsBaseRoom {
		return
	}
	rt.IsBaseRoom = true
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()

	rt.AddDomainEvent(NewBaseRoomDesignatedEvent(rt))
}

// ClearBase removes the base-room flag
func (rt *RoomType) ClearBase() {
	if !rt.IsBaseRoom {
		return
	}
	rt.IsBaseRoom = false
	rt.UpdatedAt = time.Now()
	rt.IncrementVersion()
}

// MealPlan represents a board basis (room only, breakfast, half board, ...)
type MealPlan struct {
	shared.TenantAggregateRoot
	HotelID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_meal_plan_hotel"`
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_meal_plan_hotel_code,priority:2"`
	Name            string          `gorm:"type:varchar(200);not null"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // signed percent relative to the base meal plan
	SortOrder       int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MealPlan) TableName() string {
	return "meal_plans"
}

// NewMealPlan creates a new meal plan
func NewMealPlan(tenantID, hotelID uuid.UUID, code, name string) (*MealPlan, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Meal plan code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Meal plan name cannot be empty")
	}

	return &MealPlan{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		Code:                strings.ToUpper(code),
		Name:                name,
		PriceAdjustment:     decimal.Zero,
	}, nil
}

// SetPriceAdjustment sets the signed percentage applied when prices are
// derived from the base meal plan
func (mp *MealPlan) SetPriceAdjustment(pct decimal.Decimal) {
	mp.PriceAdjustment = pct
	mp.UpdatedAt = time.Now()
	mp.IncrementVersion()
}
