package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// GormRateRepository implements RateRepository using GORM. Rate records
// are stored as date ranges; point updates carve the touched day out of
// any overlapping range so the remaining days keep their old values.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// CreateRate persists one record, first truncating any existing record of
// the same (room, meal plan) pair that overlaps the new period. Reissuing
// the same submission therefore converges on the same state.
func (r *GormRateRepository) CreateRate(ctx context.Context, record *rates.RateRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overlapping []rates.RateRecord
		if err := pairScope(tx, record.TenantID, record.HotelID, record.MarketID, record.RoomTypeID, record.MealPlanID).
			Where("start_date <= ? AND end_date >= ?", record.EndDate, record.StartDate).
			Order("start_date ASC").
			Find(&overlapping).Error; err != nil {
			return err
		}

		for i := range overlapping {
			if err := carveRange(tx, &overlapping[i], record.StartDate, record.EndDate); err != nil {
				return err
			}
		}

		return tx.Create(record).Error
	})
}

// GetRates returns the records for a hotel and market ordered by pair and
// start date
func (r *GormRateRepository) GetRates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) ([]rates.RateRecord, error) {
	var records []rates.RateRecord
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ? AND market_id = ?", tenantID, hotelID, marketID).
		Order("room_type_id ASC, meal_plan_id ASC, start_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LatestRateDate returns the most recent end date among a hotel's records
// for the market, or nil when none exist
func (r *GormRateRepository) LatestRateDate(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) (*time.Time, error) {
	var record rates.RateRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ? AND market_id = ?", tenantID, hotelID, marketID).
		Order("end_date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record.EndDate, nil
}

// BulkUpdateByDates applies the patch at single-day granularity. Per cell
// reference, an exactly matching one-day record is updated in place, a
// spanning record is split so only the touched day changes, and a date
// with no record gets a fresh one seeded from the patch's pricing model.
// Patches without a pricing model (restriction-only) never create.
func (r *GormRateRepository) BulkUpdateByDates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID, cells []rates.CellRef, patch rates.RatePatch) (rates.BulkUpdateResult, error) {
	var result rates.BulkUpdateResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currency := ""

		for _, cell := range cells {
			date := cell.Date.Truncate(day)

			var overlapping []rates.RateRecord
			if err := pairScope(tx, tenantID, hotelID, marketID, cell.RoomTypeID, cell.MealPlanID).
				Where("start_date <= ? AND end_date >= ?", date, date).
				Order("start_date ASC").
				Find(&overlapping).Error; err != nil {
				return err
			}

			if len(overlapping) == 0 {
				if patch.PricingType == "" {
					continue
				}
				if currency == "" {
					var err error
					if currency, err = marketCurrency(tx, tenantID, marketID); err != nil {
						return err
					}
				}
				record := seedRecord(tenantID, hotelID, marketID, cell, date, currency, patch)
				if err := tx.Create(record).Error; err != nil {
					return err
				}
				result.Created++
				continue
			}

			for i := range overlapping {
				existing := &overlapping[i]

				if existing.StartDate.Equal(date) && existing.EndDate.Equal(date) {
					patch.ApplyTo(existing)
					existing.UpdatedAt = time.Now()
					existing.IncrementVersion()
					if err := tx.Save(existing).Error; err != nil {
						return err
					}
					result.Updated++
					continue
				}

				// Carve the day out of the spanning record and give it its
				// own record carrying the old values plus the patch.
				dayRecord := cloneForRange(existing, date, date)
				patch.ApplyTo(dayRecord)
				if err := carveRange(tx, existing, date, date); err != nil {
					return err
				}
				if err := tx.Create(dayRecord).Error; err != nil {
					return err
				}
				result.Split++
			}
		}

		return nil
	})

	return result, err
}

// pairScope scopes a query to one (room type, meal plan) pair of a
// hotel's market
func pairScope(tx *gorm.DB, tenantID, hotelID, marketID, roomTypeID, mealPlanID uuid.UUID) *gorm.DB {
	return tx.Model(&rates.RateRecord{}).Where(
		"tenant_id = ? AND hotel_id = ? AND market_id = ? AND room_type_id = ? AND meal_plan_id = ?",
		tenantID, hotelID, marketID, roomTypeID, mealPlanID,
	)
}

// carveRange removes [from, to] from an existing record's period. The
// record keeps the leading remainder, a trailing remainder becomes a new
// row, and a fully covered record is deleted.
func carveRange(tx *gorm.DB, existing *rates.RateRecord, from, to time.Time) error {
	startsBefore := existing.StartDate.Before(from)
	endsAfter := existing.EndDate.After(to)

	switch {
	case startsBefore && endsAfter:
		trailing := cloneForRange(existing, to.Add(day), existing.EndDate)
		existing.EndDate = from.Add(-day)
		existing.UpdatedAt = time.Now()
		existing.IncrementVersion()
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return tx.Create(trailing).Error

	case startsBefore:
		existing.EndDate = from.Add(-day)
		existing.UpdatedAt = time.Now()
		existing.IncrementVersion()
		return tx.Save(existing).Error

	case endsAfter:
		existing.StartDate = to.Add(day)
		existing.UpdatedAt = time.Now()
		existing.IncrementVersion()
		return tx.Save(existing).Error

	default:
		return tx.Delete(&rates.RateRecord{}, "id = ?", existing.ID).Error
	}
}

// cloneForRange copies a record's values into a new row for a sub-range
func cloneForRange(src *rates.RateRecord, start, end time.Time) *rates.RateRecord {
	clone := *src
	clone.TenantAggregateRoot = shared.NewTenantAggregateRoot(src.TenantID)
	clone.StartDate = start
	clone.EndDate = end

	clone.ChildOrderPricing = make(rates.DecimalSlice, len(src.ChildOrderPricing))
	copy(clone.ChildOrderPricing, src.ChildOrderPricing)
	clone.OccupancyPricing = make(rates.OccupancyMap, len(src.OccupancyPricing))
	for k, v := range src.OccupancyPricing {
		clone.OccupancyPricing[k] = v
	}

	return &clone
}

// seedRecord builds a zeroed single-day record for a date that has no
// coverage yet, typed by the patch's effective pricing model
func seedRecord(tenantID, hotelID, marketID uuid.UUID, cell rates.CellRef, date time.Time, currency string, patch rates.RatePatch) *rates.RateRecord {
	record := &rates.RateRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		HotelID:             hotelID,
		RoomTypeID:          cell.RoomTypeID,
		MealPlanID:          cell.MealPlanID,
		MarketID:            marketID,
		StartDate:           date,
		EndDate:             date,
		PricingType:         patch.PricingType,
		UseMultipliers:      patch.UseMultipliers,
		Currency:            currency,
		ChildOrderPricing:   make(rates.DecimalSlice, 0),
		OccupancyPricing:    rates.NewOccupancyMap(),
	}
	patch.ApplyTo(record)
	return record
}

// marketCurrency resolves the currency bulk-created records are priced in
func marketCurrency(tx *gorm.DB, tenantID, marketID uuid.UUID) (string, error) {
	var market rates.Market
	if err := tx.Where("tenant_id = ? AND id = ?", tenantID, marketID).First(&market).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return market.Currency, nil
}

// Ensure GormRateRepository implements RateRepository
var _ rates.RateRepository = (*GormRateRepository)(nil)
