package rates

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/shared"
)

// Market represents a sales market (e.g. a source country or channel)
// with its own currency, pricing overrides and child age configuration.
type Market struct {
	shared.TenantAggregateRoot
	HotelID          uuid.UUID           `gorm:"type:uuid;not null;index:idx_market_hotel"`
	Code             string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_market_hotel_code,priority:2"`
	Name             string              `gorm:"type:varchar(200);not null"`
	Currency         string              `gorm:"type:varchar(3);not null;default:'EUR'"`
	PricingOverrides PricingOverrideList `gorm:"type:jsonb"`
	ChildAgeGroups   ChildAgeGroupList   `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Market) TableName() string {
	return "markets"
}

// NewMarket creates a new market
func NewMarket(tenantID, hotelID uuid.UUID, code, name, currency string) (*Market, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Market code cannot be empty")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	return &Market{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		Code:                strings.ToUpper(code),
		Name:                name,
		Currency:            strings.ToUpper(currency),
	}, nil
}

// SetPricingOverrides replaces the market's per-room pricing overrides
func (m *Market) SetPricingOverrides(overrides PricingOverrideList) {
	m.PricingOverrides = overrides
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetChildAgeGroups replaces the market's child age configuration
func (m *Market) SetChildAgeGroups(groups ChildAgeGroupList) {
	m.ChildAgeGroups = groups
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Season represents a named pricing season with one or more date ranges.
// A season may restrict which rooms and meal plans it applies to, and may
// carry its own pricing overrides which win over the market's.
type Season struct {
	shared.TenantAggregateRoot
	HotelID          uuid.UUID           `gorm:"type:uuid;not null;index:idx_season_hotel"`
	Name             string              `gorm:"type:varchar(200);not null"`
	DateRanges       DateRangeList       `gorm:"type:jsonb"`
	ActiveRoomTypes  UUIDList            `gorm:"type:jsonb"`
	ActiveMealPlans  UUIDList            `gorm:"type:jsonb"`
	PricingOverrides PricingOverrideList `gorm:"type:jsonb"`
	ChildAgeGroups   ChildAgeGroupList   `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Season) TableName() string {
	return "seasons"
}

// NewSeason creates a new season
func NewSeason(tenantID, hotelID uuid.UUID, name string, ranges DateRangeList) (*Season, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Season name cannot be empty")
	}
	for _, r := range ranges {
		if r.End.Before(r.Start) {
			return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Season range end cannot precede its start")
		}
	}

	return &Season{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		Name:                name,
		DateRanges:          ranges,
	}, nil
}

// FirstRange returns the season's earliest date range, if any
func (s *Season) FirstRange() (DateRange, bool) {
	if s == nil || len(s.DateRanges) == 0 {
		return DateRange{}, false
	}
	first := s.DateRanges[0]
	for _, r := range s.DateRanges[1:] {
		if r.Start.Before(first.Start) {
			first = r
		}
	}
	return first, true
}

// AppliesToRoomType reports whether the season covers the room type.
// An empty filter means the season applies to every room.
func (s *Season) AppliesToRoomType(roomTypeID uuid.UUID) bool {
	if s == nil || len(s.ActiveRoomTypes) == 0 {
		return true
	}
	return s.ActiveRoomTypes.Contains(roomTypeID)
}

// AppliesToMealPlan reports whether the season covers the meal plan
func (s *Season) AppliesToMealPlan(mealPlanID uuid.UUID) bool {
	if s == nil || len(s.ActiveMealPlans) == 0 {
		return true
	}
	return s.ActiveMealPlans.Contains(mealPlanID)
}

// SetPricingOverrides replaces the season's per-room pricing overrides
func (s *Season) SetPricingOverrides(overrides PricingOverrideList) {
	s.PricingOverrides = overrides
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
