package rates

import (
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Restrictions are the inventory-side knobs carried by every rate record
type Restrictions struct {
	Allotment         int  `gorm:"not null;default:0"`
	MinStay           int  `gorm:"not null;default:0"`
	MaxStay           int  `gorm:"not null;default:0"`
	ReleaseDays       int  `gorm:"not null;default:0"`
	StopSale          bool `gorm:"not null;default:false"`
	SingleStop        bool `gorm:"not null;default:false"`
	ClosedToArrival   bool `gorm:"not null;default:false"`
	ClosedToDeparture bool `gorm:"not null;default:false"`
}

// RateRecord is the persisted pricing unit: one record per (room type,
// meal plan, market, date range, pricing type). Which price fields are
// authoritative depends on PricingType and UseMultipliers; the engine
// guarantees the others are zeroed before a record reaches the repository.
type RateRecord struct {
	shared.TenantAggregateRoot
	HotelID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_rate_lookup,priority:1"`
	RoomTypeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_rate_lookup,priority:2"`
	MealPlanID uuid.UUID  `gorm:"type:uuid;not null;index:idx_rate_lookup,priority:3"`
	MarketID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_rate_lookup,priority:4"`
	SeasonID   *uuid.UUID `gorm:"type:uuid;index"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_rate_lookup,priority:5"`
	EndDate   time.Time `gorm:"type:date;not null"`

	PricingType    PricingType `gorm:"type:varchar(20);not null"`
	UseMultipliers bool        `gorm:"not null;default:false"`
	Currency       string      `gorm:"type:varchar(3);not null"`

	PricePerNight     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExtraAdult        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExtraInfant       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SingleSupplement  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ChildOrderPricing DecimalSlice    `gorm:"type:jsonb"`
	OccupancyPricing  OccupancyMap    `gorm:"type:jsonb"`

	Restrictions
}

// TableName returns the table name for GORM
func (RateRecord) TableName() string {
	return "rate_records"
}

// NewRateRecord builds a persistable record from a normalized cell. The
// cell must already have passed HasUsablePrice and NormalizeForPersist
// for its effective pricing model.
func NewRateRecord(
	tenantID, hotelID, roomTypeID, mealPlanID, marketID uuid.UUID,
	seasonID *uuid.UUID,
	startDate, endDate time.Time,
	currency string,
	cell *RateCell,
	useMultipliers bool,
	restrictions Restrictions,
) (*RateRecord, error) {
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Rate end date cannot precede its start date")
	}
	if !cell.PricingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRICING_TYPE", "Rate cell carries an unknown pricing type")
	}

	record := &RateRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		RoomTypeID:          roomTypeID,
		MealPlanID:          mealPlanID,
		MarketID:            marketID,
		SeasonID:            seasonID,
		StartDate:           startDate,
		EndDate:             endDate,
		PricingType:         cell.PricingType,
		UseMultipliers:      useMultipliers,
		Currency:            currency,
		PricePerNight:       cell.PricePerNight,
		ExtraAdult:          cell.ExtraAdult,
		ExtraInfant:         cell.ExtraInfant,
		SingleSupplement:    cell.SingleSupplement,
		ChildOrderPricing:   cell.ChildOrderPricing,
		OccupancyPricing:    cell.OccupancyPricing,
		Restrictions:        restrictions,
	}

	record.AddDomainEvent(NewRatePublishedEvent(record))

	return record, nil
}
