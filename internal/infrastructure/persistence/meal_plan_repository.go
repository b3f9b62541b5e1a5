package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMealPlanRepository implements MealPlanRepository using GORM
type GormMealPlanRepository struct {
	db *gorm.DB
}

// NewGormMealPlanRepository creates a new GormMealPlanRepository
func NewGormMealPlanRepository(db *gorm.DB) *GormMealPlanRepository {
	return &GormMealPlanRepository{db: db}
}

// FindByID finds a meal plan by ID within a tenant
func (r *GormMealPlanRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.MealPlan, error) {
	var mealPlan rates.MealPlan
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&mealPlan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mealPlan, nil
}

// FindByHotel returns a hotel's meal plans in display order
func (r *GormMealPlanRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.MealPlan, error) {
	var mealPlans []rates.MealPlan
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ?", tenantID, hotelID).
		Order("sort_order ASC, code ASC").
		Find(&mealPlans).Error; err != nil {
		return nil, err
	}
	return mealPlans, nil
}

// Save creates or updates a meal plan
func (r *GormMealPlanRepository) Save(ctx context.Context, mealPlan *rates.MealPlan) error {
	return r.db.WithContext(ctx).Save(mealPlan).Error
}

// Delete deletes a meal plan within a tenant
func (r *GormMealPlanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rates.MealPlan{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMealPlanRepository implements MealPlanRepository
var _ rates.MealPlanRepository = (*GormMealPlanRepository)(nil)
