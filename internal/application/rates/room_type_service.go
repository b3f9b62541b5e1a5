package rates

import (
	"context"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateRoomTypeRequest carries the fields to create a room type
type CreateRoomTypeRequest struct {
	Code            string
	Name            string
	PricingType     rates.PricingType
	UseMultipliers  bool
	MinAdults       int
	MaxAdults       int
	MaxChildren     int
	PriceAdjustment decimal.Decimal
	SortOrder       int
}

// RoomTypeService handles room type configuration
type RoomTypeService struct {
	roomRepo rates.RoomTypeRepository
}

// NewRoomTypeService creates a new RoomTypeService
func NewRoomTypeService(roomRepo rates.RoomTypeRepository) *RoomTypeService {
	return &RoomTypeService{roomRepo: roomRepo}
}

// Create creates a new room type
func (s *RoomTypeService) Create(ctx context.Context, tenantID, hotelID uuid.UUID, req CreateRoomTypeRequest) (*rates.RoomType, error) {
	rt, err := rates.NewRoomType(tenantID, hotelID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.PricingType != "" {
		if err := rt.SetPricingType(req.PricingType, req.UseMultipliers); err != nil {
			return nil, err
		}
	}
	if req.MinAdults > 0 || req.MaxAdults > 0 || req.MaxChildren > 0 {
		minAdults := req.MinAdults
		if minAdults == 0 {
			minAdults = 1
		}
		maxAdults := req.MaxAdults
		if maxAdults < minAdults {
			maxAdults = minAdults
		}
		if err := rt.SetOccupancy(minAdults, maxAdults, req.MaxChildren); err != nil {
			return nil, err
		}
	}
	if !req.PriceAdjustment.IsZero() {
		rt.SetPriceAdjustment(req.PriceAdjustment)
	}
	rt.SortOrder = req.SortOrder

	if err := s.roomRepo.Save(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// List returns the hotel's room types
func (s *RoomTypeService) List(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.RoomType, error) {
	return s.roomRepo.FindByHotel(ctx, tenantID, hotelID)
}

// SetPriceAdjustment updates a room's relative-pricing percentage
func (s *RoomTypeService) SetPriceAdjustment(ctx context.Context, tenantID, id uuid.UUID, pct decimal.Decimal) (*rates.RoomType, error) {
	rt, err := s.roomRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	rt.SetPriceAdjustment(pct)
	if err := s.roomRepo.Save(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// SetCombinationTable replaces a room's multiplier combination table
func (s *RoomTypeService) SetCombinationTable(ctx context.Context, tenantID, id uuid.UUID, table rates.CombinationTable) (*rates.RoomType, error) {
	rt, err := s.roomRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := rt.SetCombinationTable(table); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// DesignateBaseRoom marks one room as the hotel's base room and clears
// the flag on every sibling in the same batch, keeping the single-base
// invariant the propagator relies on.
func (s *RoomTypeService) DesignateBaseRoom(ctx context.Context, tenantID, hotelID, roomTypeID uuid.UUID) error {
	rooms, err := s.roomRepo.FindByHotel(ctx, tenantID, hotelID)
	if err != nil {
		return err
	}

	changed := make([]*rates.RoomType, 0, len(rooms))
	found := false
	for i := range rooms {
		rt := &rooms[i]
		switch {
		case rt.ID == roomTypeID:
			found = true
			if !rt.IsBaseRoom {
				rt.MarkAsBase()
				changed = append(changed, rt)
			}
		case rt.IsBaseRoom:
			rt.ClearBase()
			changed = append(changed, rt)
		}
	}
	if !found {
		return shared.ErrNotFound
	}
	if len(changed) == 0 {
		return nil
	}
	return s.roomRepo.SaveBatch(ctx, changed)
}

// Delete removes a room type
func (s *RoomTypeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.roomRepo.Delete(ctx, tenantID, id)
}
