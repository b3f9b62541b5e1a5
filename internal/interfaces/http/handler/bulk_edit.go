package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/infrastructure/telemetry"
)

// BulkCellRef selects one cell of the bulk edit
type BulkCellRef struct {
	Date       string `json:"date" binding:"required"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	MealPlanID string `json:"meal_plan_id" binding:"required,uuid"`
}

// BulkEditInput is one pair's sparse patch
type BulkEditInput struct {
	RoomTypeID string          `json:"room_type_id" binding:"required,uuid"`
	MealPlanID string          `json:"meal_plan_id" binding:"required,uuid"`
	Patch      rates.RatePatch `json:"patch"`
}

// BulkEditBody is the price bulk edit payload
type BulkEditBody struct {
	SeasonID string          `json:"season_id" binding:"omitempty,uuid"`
	Cells    []BulkCellRef   `json:"cells" binding:"required"`
	Edits    []BulkEditInput `json:"edits" binding:"required"`
}

// BulkRestrictionsBody is the restriction bulk edit payload
type BulkRestrictionsBody struct {
	Cells []BulkCellRef   `json:"cells" binding:"required"`
	Patch rates.RatePatch `json:"patch"`
}

// BulkEditHandler exposes bulk cell edits over HTTP
type BulkEditHandler struct {
	BaseHandler
	bulkService *apprates.BulkEditService
}

// NewBulkEditHandler creates a new BulkEditHandler
func NewBulkEditHandler(bulkService *apprates.BulkEditService) *BulkEditHandler {
	return &BulkEditHandler{bulkService: bulkService}
}

// RegisterRoutes registers bulk edit routes
func (h *BulkEditHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/hotels/:hotelID/markets/:marketID/bulk")
	g.POST("", h.Apply)
	g.POST("/restrictions", h.ApplyRestrictions)
}

// Apply fans the price edits out across the cell selection. The fan-out
// is best effort: a partial outcome with failed pairs still returns 200
// so the client can report per-pair results.
func (h *BulkEditHandler) Apply(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var body BulkEditBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid bulk edit request")
		return
	}

	cells, ok := h.parseCells(c, body.Cells)
	if !ok {
		return
	}

	edits := make(map[uuid.UUID]map[uuid.UUID]rates.RatePatch, len(body.Edits))
	for _, e := range body.Edits {
		roomID, err := uuid.Parse(e.RoomTypeID)
		if err != nil {
			h.BadRequest(c, "Invalid room type ID in edits")
			return
		}
		mealID, err := uuid.Parse(e.MealPlanID)
		if err != nil {
			h.BadRequest(c, "Invalid meal plan ID in edits")
			return
		}
		if edits[roomID] == nil {
			edits[roomID] = make(map[uuid.UUID]rates.RatePatch)
		}
		edits[roomID][mealID] = e.Patch
	}

	ctx, span := telemetry.StartServiceSpan(c.Request.Context(), "bulk_edit", "apply",
		telemetry.WithAttribute(telemetry.SpanAttrHotelID, hotelID),
		telemetry.WithAttribute(telemetry.SpanAttrMarketID, marketID),
		telemetry.WithAttribute(telemetry.SpanAttrCellCount, len(cells)),
	)
	defer span.End()

	outcome, err := h.bulkService.Apply(ctx, apprates.BulkEditRequest{
		TenantID:       tenantID,
		HotelID:        hotelID,
		MarketID:       marketID,
		SeasonID:       parseOptionalUUID(body.SeasonID),
		Cells:          cells,
		Edits:          edits,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil && outcome.PairsApplied == 0 {
		telemetry.RecordError(span, err)
		h.HandleError(c, err)
		return
	}

	h.Success(c, outcome)
}

// ApplyRestrictions submits restriction fields across the whole selection
func (h *BulkEditHandler) ApplyRestrictions(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var body BulkRestrictionsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid bulk restrictions request")
		return
	}

	cells, ok := h.parseCells(c, body.Cells)
	if !ok {
		return
	}

	outcome, err := h.bulkService.ApplyRestrictions(c.Request.Context(), apprates.BulkEditRequest{
		TenantID: tenantID,
		HotelID:  hotelID,
		MarketID: marketID,
		Cells:    cells,
	}, body.Patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outcome)
}

// selection parses the tenant, hotel and market of the request
func (h *BulkEditHandler) selection(c *gin.Context) (tenantID, hotelID, marketID uuid.UUID, ok bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	hotelID, valid := parseUUIDParam(c, "hotelID")
	if !valid {
		h.BadRequest(c, "Invalid hotel ID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	marketID, valid = parseUUIDParam(c, "marketID")
	if !valid {
		h.BadRequest(c, "Invalid market ID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return tenantID, hotelID, marketID, true
}

// parseCells converts the wire cell refs into domain refs
func (h *BulkEditHandler) parseCells(c *gin.Context, refs []BulkCellRef) ([]rates.CellRef, bool) {
	cells := make([]rates.CellRef, 0, len(refs))
	for _, ref := range refs {
		date, err := rates.ParseISODate(ref.Date)
		if err != nil {
			h.BadRequest(c, "Invalid cell date, expected YYYY-MM-DD")
			return nil, false
		}
		roomID, err := uuid.Parse(ref.RoomTypeID)
		if err != nil {
			h.BadRequest(c, "Invalid room type ID in cells")
			return nil, false
		}
		mealID, err := uuid.Parse(ref.MealPlanID)
		if err != nil {
			h.BadRequest(c, "Invalid meal plan ID in cells")
			return nil, false
		}
		cells = append(cells, rates.CellRef{Date: date, RoomTypeID: roomID, MealPlanID: mealID})
	}
	return cells, true
}
