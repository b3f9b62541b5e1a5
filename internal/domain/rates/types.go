package rates

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingType identifies the pricing model of a room type
type PricingType string

const (
	// PricingTypeUnit prices the whole room per night
	PricingTypeUnit PricingType = "unit"
	// PricingTypePerPerson prices each occupant individually
	PricingTypePerPerson PricingType = "per_person"
)

// IsValid reports whether the pricing type is a known value
func (p PricingType) IsValid() bool {
	return p == PricingTypeUnit || p == PricingTypePerPerson
}

// Occupancy bounds for the per-person pricing table
const (
	MinOccupancyKey = 1
	MaxOccupancyKey = 10
)

// DefaultMaxChildren is used when a room type does not configure a child limit
const DefaultMaxChildren = 2

// PricingOverride overrides pricing scalars for one room type within a
// market or season. Each scalar has its own enable flag so a season can
// override the pricing type without touching the minimum adults, and
// vice versa.
type PricingOverride struct {
	RoomTypeID             uuid.UUID   `json:"room_type_id"`
	UseMinAdultsOverride   bool        `json:"use_min_adults_override"`
	MinAdults              int         `json:"min_adults"`
	UsePricingTypeOverride bool        `json:"use_pricing_type_override"`
	PricingType            PricingType `json:"pricing_type"`
}

// PricingOverrideList is a jsonb-persisted list of pricing overrides
type PricingOverrideList []PricingOverride

// Value implements driver.Valuer for jsonb storage
func (l PricingOverrideList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (l *PricingOverrideList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Find returns the override entry for a room type, if present
func (l PricingOverrideList) Find(roomTypeID uuid.UUID) (PricingOverride, bool) {
	for _, o := range l {
		if o.RoomTypeID == roomTypeID {
			return o, true
		}
	}
	return PricingOverride{}, false
}

// ChildAgeGroup is a configured child age bracket (e.g. infant 0-2)
type ChildAgeGroup struct {
	Code   string `json:"code"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// ChildAgeGroupList is a jsonb-persisted list of child age groups
type ChildAgeGroupList []ChildAgeGroup

// Value implements driver.Valuer for jsonb storage
func (l ChildAgeGroupList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (l *ChildAgeGroupList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// CombinationEntry is one row of a room type's multiplier table: a valid
// adult count plus an ordered list of child age-group codes.
type CombinationEntry struct {
	Adults         int      `json:"adults"`
	ChildAgeGroups []string `json:"child_age_groups"`
	IsActive       bool     `json:"is_active"`
}

// CombinationTable is a jsonb-persisted multiplier combination table
type CombinationTable []CombinationEntry

// Value implements driver.Valuer for jsonb storage
func (t CombinationTable) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (t *CombinationTable) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// DateRange is an inclusive calendar date range
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateRangeList is a jsonb-persisted list of date ranges
type DateRangeList []DateRange

// Value implements driver.Valuer for jsonb storage
func (l DateRangeList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (l *DateRangeList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// UUIDList is a jsonb-persisted list of entity references
type UUIDList []uuid.UUID

// Value implements driver.Valuer for jsonb storage
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (l *UUIDList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains reports whether the list contains the given ID
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// DecimalSlice is a jsonb-persisted ordered list of prices, indexed by
// child order (first child, second child, ...)
type DecimalSlice []decimal.Decimal

// Value implements driver.Valuer for jsonb storage
func (s DecimalSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (s *DecimalSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// OccupancyMap maps an occupancy count (1..10) to a per-person price
type OccupancyMap map[int]decimal.Decimal

// NewOccupancyMap returns a map with every occupancy key zeroed
func NewOccupancyMap() OccupancyMap {
	m := make(OccupancyMap, MaxOccupancyKey)
	for i := MinOccupancyKey; i <= MaxOccupancyKey; i++ {
		m[i] = decimal.Zero
	}
	return m
}

// Value implements driver.Valuer for jsonb storage
func (m OccupancyMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage
func (m *OccupancyMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// scanJSON unmarshals a jsonb column into dest, accepting the []byte and
// string representations different drivers hand back
func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
