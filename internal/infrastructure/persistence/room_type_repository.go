package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRoomTypeRepository implements RoomTypeRepository using GORM
type GormRoomTypeRepository struct {
	db *gorm.DB
}

// NewGormRoomTypeRepository creates a new GormRoomTypeRepository
func NewGormRoomTypeRepository(db *gorm.DB) *GormRoomTypeRepository {
	return &GormRoomTypeRepository{db: db}
}

// FindByID finds a room type by ID within a tenant
func (r *GormRoomTypeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*rates.RoomType, error) {
	var roomType rates.RoomType
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &roomType, nil
}

// FindByHotel returns a hotel's room types in display order
func (r *GormRoomTypeRepository) FindByHotel(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.RoomType, error) {
	var roomTypes []rates.RoomType
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND hotel_id = ?", tenantID, hotelID).
		Order("sort_order ASC, code ASC").
		Find(&roomTypes).Error; err != nil {
		return nil, err
	}
	return roomTypes, nil
}

// Save creates or updates a room type
func (r *GormRoomTypeRepository) Save(ctx context.Context, roomType *rates.RoomType) error {
	return r.db.WithContext(ctx).Save(roomType).Error
}

// SaveBatch creates or updates multiple room types in one write
func (r *GormRoomTypeRepository) SaveBatch(ctx context.Context, roomTypes []*rates.RoomType) error {
	if len(roomTypes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(roomTypes).Error
}

// Delete deletes a room type within a tenant
func (r *GormRoomTypeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rates.RoomType{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRoomTypeRepository implements RoomTypeRepository
var _ rates.RoomTypeRepository = (*GormRoomTypeRepository)(nil)
