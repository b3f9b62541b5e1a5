package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoomTypeHandler_Create(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hotelID := uuid.New()

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("Save", mock.Anything, mock.AnythingOfType("*rates.RoomType")).Return(nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))

	body := CreateRoomTypeRequest{
		Code:        "STD",
		Name:        "Standard Room",
		PricingType: "per_person",
		MinAdults:   1,
		MaxAdults:   3,
		MaxChildren: 2,
		SortOrder:   1,
	}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/hotels/"+hotelID.String()+"/room-types", body, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["success"])

	roomRepo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(rt *rates.RoomType) bool {
		return rt.TenantID == tenantID && rt.Code == "STD" && rt.PricingType == rates.PricingTypePerPerson
	}))
}

func TestRoomTypeHandler_Create_InvalidCode(t *testing.T) {
	roomRepo := new(MockRoomTypeRepository)
	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))

	body := CreateRoomTypeRequest{Name: "No Code"}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/hotels/"+uuid.NewString()+"/room-types", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	roomRepo.AssertNotCalled(t, "Save")
}

func TestRoomTypeHandler_DesignateBase(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hotelID := uuid.New()

	oldBase := testRoom(t, tenantID, hotelID, "STD", 1, true)
	newBase := testRoom(t, tenantID, hotelID, "DLX", 2, false)

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("FindByHotel", mock.Anything, tenantID, hotelID).Return([]rates.RoomType{oldBase, newBase}, nil)
	roomRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))
	w := doJSON(t, engine, http.MethodPut,
		"/api/v1/hotels/"+hotelID.String()+"/room-types/"+newBase.ID.String()+"/base", nil, nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	roomRepo.AssertCalled(t, "SaveBatch", mock.Anything, mock.MatchedBy(func(changed []*rates.RoomType) bool {
		// both the old base (cleared) and the new base (marked) are saved
		return len(changed) == 2
	}))
}

func TestRoomTypeHandler_DesignateBase_UnknownRoom(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hotelID := uuid.New()

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("FindByHotel", mock.Anything, tenantID, hotelID).Return([]rates.RoomType{}, nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))
	w := doJSON(t, engine, http.MethodPut,
		"/api/v1/hotels/"+hotelID.String()+"/room-types/"+uuid.NewString()+"/base", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomTypeHandler_SetPriceAdjustment(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hotelID := uuid.New()
	room := testRoom(t, tenantID, hotelID, "DLX", 2, false)

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("FindByID", mock.Anything, tenantID, room.ID).Return(&room, nil)
	roomRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))
	body := PriceAdjustmentRequest{PriceAdjustment: dec("15")}
	w := doJSON(t, engine, http.MethodPut, "/api/v1/room-types/"+room.ID.String()+"/price-adjustment", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, room.PriceAdjustment.Equal(dec("15")))
}

func TestRoomTypeHandler_SetCombinationTable(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hotelID := uuid.New()
	room := testRoom(t, tenantID, hotelID, "FAM", 3, false)

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("FindByID", mock.Anything, tenantID, room.ID).Return(&room, nil)
	roomRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))
	body := CombinationTableRequest{
		Combinations: []CombinationEntryInput{
			{Adults: 2, IsActive: true},
			{Adults: 2, ChildAgeGroups: []string{"child"}, IsActive: true},
		},
	}
	w := doJSON(t, engine, http.MethodPut, "/api/v1/room-types/"+room.ID.String()+"/combinations", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, room.CombinationTable, 2)
}

func TestRoomTypeHandler_Delete(t *testing.T) {
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	roomTypeID := uuid.New()

	roomRepo := new(MockRoomTypeRepository)
	roomRepo.On("Delete", mock.Anything, tenantID, roomTypeID).Return(nil)

	engine := setupTestRouter(NewRoomTypeHandler(apprates.NewRoomTypeService(roomRepo)))
	w := doJSON(t, engine, http.MethodDelete, "/api/v1/room-types/"+roomTypeID.String(), nil, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
