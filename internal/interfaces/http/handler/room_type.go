package handler

import (
	"github.com/gin-gonic/gin"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/shopspring/decimal"
)

// CreateRoomTypeRequest creates a room type for a hotel
type CreateRoomTypeRequest struct {
	Code            string          `json:"code" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	PricingType     string          `json:"pricing_type"`
	UseMultipliers  bool            `json:"use_multipliers"`
	MinAdults       int             `json:"min_adults"`
	MaxAdults       int             `json:"max_adults"`
	MaxChildren     int             `json:"max_children"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	SortOrder       int             `json:"sort_order"`
}

// PriceAdjustmentRequest updates a relative-pricing percentage
type PriceAdjustmentRequest struct {
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// CombinationEntryInput is one occupancy combination row
type CombinationEntryInput struct {
	Adults         int      `json:"adults"`
	ChildAgeGroups []string `json:"child_age_groups"`
	IsActive       bool     `json:"is_active"`
}

// CombinationTableRequest replaces a room's combination table
type CombinationTableRequest struct {
	Combinations []CombinationEntryInput `json:"combinations" binding:"required"`
}

// RoomTypeHandler exposes room type configuration over HTTP
type RoomTypeHandler struct {
	BaseHandler
	roomTypeService *apprates.RoomTypeService
}

// NewRoomTypeHandler creates a new RoomTypeHandler
func NewRoomTypeHandler(roomTypeService *apprates.RoomTypeService) *RoomTypeHandler {
	return &RoomTypeHandler{roomTypeService: roomTypeService}
}

// RegisterRoutes registers room type routes
func (h *RoomTypeHandler) RegisterRoutes(r *gin.RouterGroup) {
	hotel := r.Group("/hotels/:hotelID/room-types")
	hotel.POST("", h.Create)
	hotel.GET("", h.List)
	hotel.PUT("/:roomTypeID/base", h.DesignateBase)

	single := r.Group("/room-types/:roomTypeID")
	single.PUT("/price-adjustment", h.SetPriceAdjustment)
	single.PUT("/combinations", h.SetCombinationTable)
	single.DELETE("", h.Delete)
}

// Create adds a room type to the hotel
func (h *RoomTypeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	hotelID, ok := parseUUIDParam(c, "hotelID")
	if !ok {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid room type request")
		return
	}

	rt, err := h.roomTypeService.Create(c.Request.Context(), tenantID, hotelID, apprates.CreateRoomTypeRequest{
		Code:            req.Code,
		Name:            req.Name,
		PricingType:     rates.PricingType(req.PricingType),
		UseMultipliers:  req.UseMultipliers,
		MinAdults:       req.MinAdults,
		MaxAdults:       req.MaxAdults,
		MaxChildren:     req.MaxChildren,
		PriceAdjustment: req.PriceAdjustment,
		SortOrder:       req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rt)
}

// List returns the hotel's room types in sort order
func (h *RoomTypeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	hotelID, ok := parseUUIDParam(c, "hotelID")
	if !ok {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	rooms, err := h.roomTypeService.List(c.Request.Context(), tenantID, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rooms)
}

// DesignateBase marks one room as the hotel's base room
func (h *RoomTypeHandler) DesignateBase(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	hotelID, ok := parseUUIDParam(c, "hotelID")
	if !ok {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}
	roomTypeID, ok := parseUUIDParam(c, "roomTypeID")
	if !ok {
		h.BadRequest(c, "Invalid room type ID")
		return
	}

	if err := h.roomTypeService.DesignateBaseRoom(c.Request.Context(), tenantID, hotelID, roomTypeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetPriceAdjustment updates the room's relative-pricing percentage
func (h *RoomTypeHandler) SetPriceAdjustment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roomTypeID, ok := parseUUIDParam(c, "roomTypeID")
	if !ok {
		h.BadRequest(c, "Invalid room type ID")
		return
	}

	var req PriceAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid price adjustment request")
		return
	}

	rt, err := h.roomTypeService.SetPriceAdjustment(c.Request.Context(), tenantID, roomTypeID, req.PriceAdjustment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rt)
}

// SetCombinationTable replaces the room's occupancy combination table
func (h *RoomTypeHandler) SetCombinationTable(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roomTypeID, ok := parseUUIDParam(c, "roomTypeID")
	if !ok {
		h.BadRequest(c, "Invalid room type ID")
		return
	}

	var req CombinationTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid combination table request")
		return
	}

	table := make(rates.CombinationTable, 0, len(req.Combinations))
	for _, entry := range req.Combinations {
		table = append(table, rates.CombinationEntry{
			Adults:         entry.Adults,
			ChildAgeGroups: entry.ChildAgeGroups,
			IsActive:       entry.IsActive,
		})
	}

	rt, err := h.roomTypeService.SetCombinationTable(c.Request.Context(), tenantID, roomTypeID, table)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rt)
}

// Delete removes a room type
func (h *RoomTypeHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roomTypeID, ok := parseUUIDParam(c, "roomTypeID")
	if !ok {
		h.BadRequest(c, "Invalid room type ID")
		return
	}

	if err := h.roomTypeService.Delete(c.Request.Context(), tenantID, roomTypeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
