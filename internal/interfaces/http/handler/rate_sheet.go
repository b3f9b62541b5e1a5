package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/infrastructure/telemetry"
)

// RateSheetHandler exposes the rate editing workflow over HTTP
type RateSheetHandler struct {
	BaseHandler
	sheetService *apprates.RateSheetService
}

// NewRateSheetHandler creates a new RateSheetHandler
func NewRateSheetHandler(sheetService *apprates.RateSheetService) *RateSheetHandler {
	return &RateSheetHandler{sheetService: sheetService}
}

// RegisterRoutes registers rate sheet routes
func (h *RateSheetHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/hotels/:hotelID/markets/:marketID")
	g.GET("/sheet", h.GetSheet)
	g.POST("/sheet/preview", h.PreviewSheet)
	g.POST("/sheet/submit", h.SubmitSheet)
	g.GET("/suggest-period", h.SuggestPeriod)
	g.GET("/rates", h.ListRates)
}

// GetSheet builds a fresh editing sheet for the selection
func (h *RateSheetHandler) GetSheet(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var q SheetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid season selection")
		return
	}

	sheet, err := h.sheetService.BuildSheet(c.Request.Context(), tenantID, hotelID, marketID, parseOptionalUUID(q.SeasonID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toSheetResponse(h.sheetService, sheet))
}

// PreviewSheet applies cell edits to a fresh sheet and returns the
// resulting grid without persisting anything. With propagate set the base
// cell is fanned out to every other cell first.
func (h *RateSheetHandler) PreviewSheet(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var req PreviewSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid preview request")
		return
	}

	sheet, err := h.sheetService.BuildSheet(c.Request.Context(), tenantID, hotelID, marketID, parseOptionalUUID(req.SeasonID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	applyCellInputs(sheet, req.Cells)
	if req.Propagate {
		h.sheetService.RecomputeRelative(sheet)
	}

	h.Success(c, toSheetResponse(h.sheetService, sheet))
}

// SubmitSheet turns an edited sheet into persisted rate records
func (h *RateSheetHandler) SubmitSheet(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var req SubmitSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid submit request")
		return
	}

	start, err := rates.ParseISODate(req.Start)
	if err != nil {
		h.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := rates.ParseISODate(req.End)
	if err != nil {
		h.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	ctx, span := telemetry.StartServiceSpan(c.Request.Context(), "rate_sheet", "submit",
		telemetry.WithAttribute(telemetry.SpanAttrHotelID, hotelID),
		telemetry.WithAttribute(telemetry.SpanAttrMarketID, marketID),
	)
	defer span.End()

	sheet, err := h.sheetService.BuildSheet(ctx, tenantID, hotelID, marketID, parseOptionalUUID(req.SeasonID))
	if err != nil {
		telemetry.RecordError(span, err)
		h.HandleError(c, err)
		return
	}

	applyCellInputs(sheet, req.Cells)
	if req.Propagate {
		h.sheetService.RecomputeRelative(sheet)
	}

	result, err := h.sheetService.Submit(ctx, sheet, apprates.SubmitPeriod{
		Start:        start,
		End:          end,
		Restrictions: req.Restrictions.toDomain(),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// SuggestPeriod proposes the next pricing window for the selection
func (h *RateSheetHandler) SuggestPeriod(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	var q SheetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid season selection")
		return
	}

	var season *rates.Season
	if id := parseOptionalUUID(q.SeasonID); id != nil {
		var err error
		season, err = h.sheetService.FindSeason(c.Request.Context(), tenantID, *id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}

	period, err := h.sheetService.SuggestNextPeriod(c.Request.Context(), tenantID, hotelID, marketID, season)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// ListRates returns the persisted rate records for the selection
func (h *RateSheetHandler) ListRates(c *gin.Context) {
	tenantID, hotelID, marketID, ok := h.selection(c)
	if !ok {
		return
	}

	records, err := h.sheetService.ListRates(c.Request.Context(), tenantID, hotelID, marketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]RateRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, toRateRecordResponse(&records[i]))
	}
	h.Success(c, out)
}

// selection parses the tenant, hotel and market of the request
func (h *RateSheetHandler) selection(c *gin.Context) (tenantID, hotelID, marketID uuid.UUID, ok bool) {
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

// applyCellInputs writes operator-entered values onto the sheet's cells.
// Inputs for pairs outside the sheet's scope are ignored.
func applyCellInputs(sheet *apprates.RateSheet, inputs []CellInput) {
	for _, in := range inputs {
		roomID, err := uuid.Parse(in.RoomTypeID)
		if err != nil {
			continue
		}
		mealID, err := uuid.Parse(in.MealPlanID)
		if err != nil {
			continue
		}
		cell := sheet.Grid.Get(roomID, mealID)
		if cell == nil {
			continue
		}

		cell.PricePerNight = in.PricePerNight
		cell.ExtraAdult = in.ExtraAdult
		cell.ExtraInfant = in.ExtraInfant
		cell.SingleSupplement = in.SingleSupplement
		for i, price := range in.ChildOrderPricing {
			if i < len(cell.ChildOrderPricing) {
				cell.ChildOrderPricing[i] = price
			}
		}
		for count, price := range in.OccupancyPricing {
			if _, known := cell.OccupancyPricing[count]; known {
				cell.OccupancyPricing[count] = price
			}
		}
	}
}

// parseOptionalUUID returns nil for an empty string
func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
