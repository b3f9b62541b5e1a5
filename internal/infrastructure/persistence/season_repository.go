package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSeasonRepository implements SeasonRepository using GORM
type GormSeasonRepository struct {
	db *gorm.DB
}

// NewGormSeasonRepository creates a new GormSeasonRepository
func NewGormSeasonRepository(db *gorm.DB) *GormSeasonRepository {
	return &GormSeasonRepository{db: db}
}

// FindByID finds a season by ID within a tenant
func (r *GormSeasonRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.Season, error) {
	var season rates.Season
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// FindByHotel returns a hotel's seasons
func (r *GormSeasonRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Season, error) {
	var seasons []rates.Season
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ?", tenantID, hotelID).
		Order("name ASC").
		Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// Save creates or updates a season
func (r *GormSeasonRepository) Save(ctx context.Context, season *rates.Season) error {
	return r.db.WithContext(ctx).Save(season).Error
}

// Delete deletes a season within a tenant
func (r *GormSeasonRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rates.Season{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSeasonRepository implements SeasonRepository
var _ rates.SeasonRepository = (*GormSeasonRepository)(nil)
