package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMarketRepository implements MarketRepository using GORM
type GormMarketRepository struct {
	db *gorm.DB
}

// NewGormMarketRepository creates a new GormMarketRepository
func NewGormMarketRepository(db *gorm.DB) *GormMarketRepository {
	return &GormMarketRepository{db: db}
}

// FindByID finds a market by ID within a tenant
func (r *GormMarketRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.Market, error) {
	var market rates.Market
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&market).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &market, nil
}

// FindByHotel returns a hotel's markets
func (r *GormMarketRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Market, error) {
	var markets []rates.Market
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ?", tenantID, hotelID).
		Order("code ASC").
		Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}

// Save creates or updates a market
func (r *GormMarketRepository) Save(ctx context.Context, market *rates.Market) error {
	return r.db.WithContext(ctx).Save(market).Error
}

// Delete deletes a market within a tenant
func (r *GormMarketRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rates.Market{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMarketRepository implements MarketRepository
var _ rates.MarketRepository = (*GormMarketRepository)(nil)
