package rates

import (
	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/shared"
)

// Event type constants
const (
	EventRoomTypeCreated    = "rates.room_type.created"
	EventRoomTypeUpdated    = "rates.room_type.updated"
	EventBaseRoomDesignated = "rates.room_type.base_designated"
	EventRatePublished      = "rates.rate.published"
)

// RoomTypeCreatedEvent is raised when a room type is created
type RoomTypeCreatedEvent struct {
	shared.BaseDomainEvent
	HotelID uuid.UUID `json:"hotel_id"`
	Code    string    `json:"code"`
}

// NewRoomTypeCreatedEvent creates a new RoomTypeCreatedEvent
func NewRoomTypeCreatedEvent(rt *RoomType) *RoomTypeCreatedEvent {
	return &RoomTypeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRoomTypeCreated, "RoomType", rt.ID, rt.TenantID),
		HotelID:         rt.HotelID,
		Code:            rt.Code,
	}
}

// RoomTypeUpdatedEvent is raised when pricing configuration changes
type RoomTypeUpdatedEvent struct {
	shared.BaseDomainEvent
	HotelID uuid.UUID `json:"hotel_id"`
}

// NewRoomTypeUpdatedEvent creates a new RoomTypeUpdatedEvent
func NewRoomTypeUpdatedEvent(rt *RoomType) *RoomTypeUpdatedEvent {
	return &RoomTypeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRoomTypeUpdated, "RoomType", rt.ID, rt.TenantID),
		HotelID:         rt.HotelID,
	}
}

// BaseRoomDesignatedEvent is raised when a room becomes the hotel's base room
type BaseRoomDesignatedEvent struct {
	shared.BaseDomainEvent
	HotelID uuid.UUID `json:"hotel_id"`
}

// NewBaseRoomDesignatedEvent creates a new BaseRoomDesignatedEvent
func NewBaseRoomDesignatedEvent(rt *RoomType) *BaseRoomDesignatedEvent {
	return &BaseRoomDesignatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBaseRoomDesignated, "RoomType", rt.ID, rt.TenantID),
		HotelID:         rt.HotelID,
	}
}

// RatePublishedEvent is raised when a rate record is submitted for persistence
type RatePublishedEvent struct {
	shared.BaseDomainEvent
	HotelID     uuid.UUID   `json:"hotel_id"`
	RoomTypeID  uuid.UUID   `json:"room_type_id"`
	MealPlanID  uuid.UUID   `json:"meal_plan_id"`
	PricingType PricingType `json:"pricing_type"`
}

// NewRatePublishedEvent creates a new RatePublishedEvent
func NewRatePublishedEvent(r *RateRecord) *RatePublishedEvent {
	return &RatePublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRatePublished, "RateRecord", r.ID, r.TenantID),
		HotelID:         r.HotelID,
		RoomTypeID:      r.RoomTypeID,
		MealPlanID:      r.MealPlanID,
		PricingType:     r.PricingType,
	}
}
