package rates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoomTypeCreate_AppliesConfiguration(t *testing.T) {
	repo := new(MockRoomTypeRepository)
	svc := NewRoomTypeService(repo)
	tenantID, hotelID := uuid.New(), uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*rates.RoomType")).Return(nil)

	rt, err := svc.Create(context.Background(), tenantID, hotelID, CreateRoomTypeRequest{
		Code:            "fam",
		Name:            "Family Room",
		PricingType:     rates.PricingTypePerPerson,
		MinAdults:       2,
		MaxAdults:       3,
		MaxChildren:     2,
		PriceAdjustment: decimal.RequireFromString("15"),
	})

	require.NoError(t, err)
	assert.Equal(t, "FAM", rt.Code)
	assert.Equal(t, rates.PricingTypePerPerson, rt.PricingType)
	assert.Equal(t, 2, rt.MinAdults)
	assert.Equal(t, 3, rt.MaxAdults)
	assert.True(t, rt.PriceAdjustment.Equal(decimal.RequireFromString("15")))
	repo.AssertExpectations(t)
}

func TestDesignateBaseRoom_ClearsPreviousBase(t *testing.T) {
	repo := new(MockRoomTypeRepository)
	svc := NewRoomTypeService(repo)
	tenantID, hotelID := uuid.New(), uuid.New()

	oldBase := newTestRoom(t, tenantID, hotelID, "STD", 1)
	oldBase.MarkAsBase()
	newBase := newTestRoom(t, tenantID, hotelID, "DBL", 2)
	untouched := newTestRoom(t, tenantID, hotelID, "SUI", 3)

	repo.On("FindByHotel", mock.Anything, tenantID, hotelID).
		Return([]rates.RoomType{*oldBase, *newBase, *untouched}, nil)

	var saved []*rates.RoomType
	repo.On("SaveBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]*rates.RoomType) }).
		Return(nil)

	err := svc.DesignateBaseRoom(context.Background(), tenantID, hotelID, newBase.ID)

	require.NoError(t, err)
	// exactly the old and the new base are written, in one batch
	require.Len(t, saved, 2)
	byID := map[uuid.UUID]*rates.RoomType{saved[0].ID: saved[0], saved[1].ID: saved[1]}
	assert.False(t, byID[oldBase.ID].IsBaseRoom)
	assert.True(t, byID[newBase.ID].IsBaseRoom)
}

func TestDesignateBaseRoom_AlreadyBaseIsANoop(t *testing.T) {
	repo := new(MockRoomTypeRepository)
	svc := NewRoomTypeService(repo)
	tenantID, hotelID := uuid.New(), uuid.New()

	base := newTestRoom(t, tenantID, hotelID, "STD", 1)
	base.MarkAsBase()

	repo.On("FindByHotel", mock.Anything, tenantID, hotelID).
		Return([]rates.RoomType{*base}, nil)

	err := svc.DesignateBaseRoom(context.Background(), tenantID, hotelID, base.ID)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestDesignateBaseRoom_UnknownRoom(t *testing.T) {
	repo := new(MockRoomTypeRepository)
	svc := NewRoomTypeService(repo)
	tenantID, hotelID := uuid.New(), uuid.New()

	repo.On("FindByHotel", mock.Anything, tenantID, hotelID).
		Return([]rates.RoomType{*newTestRoom(t, tenantID, hotelID, "STD", 1)}, nil)

	err := svc.DesignateBaseRoom(context.Background(), tenantID, hotelID, uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}
