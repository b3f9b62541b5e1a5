package handler

import (
	"time"

	"github.com/google/uuid"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/shopspring/decimal"
)

// SheetQuery selects the sheet's optional season
type SheetQuery struct {
	SeasonID string `form:"season_id" binding:"omitempty,uuid"`
}

// CellInput carries operator-entered prices for one (room, meal plan) pair
type CellInput struct {
	RoomTypeID        string                  `json:"room_type_id" binding:"required,uuid"`
	MealPlanID        string                  `json:"meal_plan_id" binding:"required,uuid"`
	PricePerNight     decimal.Decimal         `json:"price_per_night"`
	ExtraAdult        decimal.Decimal         `json:"extra_adult"`
	ExtraInfant       decimal.Decimal         `json:"extra_infant"`
	SingleSupplement  decimal.Decimal         `json:"single_supplement"`
	ChildOrderPricing []decimal.Decimal       `json:"child_order_pricing"`
	OccupancyPricing  map[int]decimal.Decimal `json:"occupancy_pricing"`
}

// RestrictionsInput carries the restriction fields of a submit
type RestrictionsInput struct {
	Allotment         int  `json:"allotment"`
	MinStay           int  `json:"min_stay"`
	MaxStay           int  `json:"max_stay"`
	ReleaseDays       int  `json:"release_days"`
	StopSale          bool `json:"stop_sale"`
	SingleStop        bool `json:"single_stop"`
	ClosedToArrival   bool `json:"closed_to_arrival"`
	ClosedToDeparture bool `json:"closed_to_departure"`
}

func (r RestrictionsInput) toDomain() rates.Restrictions {
	return rates.Restrictions{
		Allotment:         r.Allotment,
		MinStay:           r.MinStay,
		MaxStay:           r.MaxStay,
		ReleaseDays:       r.ReleaseDays,
		StopSale:          r.StopSale,
		SingleStop:        r.SingleStop,
		ClosedToArrival:   r.ClosedToArrival,
		ClosedToDeparture: r.ClosedToDeparture,
	}
}

// PreviewSheetRequest applies cell edits to a fresh sheet and returns the
// resulting grid, optionally fanning the base cell out first
type PreviewSheetRequest struct {
	SeasonID  string      `json:"season_id" binding:"omitempty,uuid"`
	Cells     []CellInput `json:"cells"`
	Propagate bool        `json:"propagate"`
}

// SubmitSheetRequest turns an edited sheet into persisted rate records
type SubmitSheetRequest struct {
	SeasonID     string            `json:"season_id" binding:"omitempty,uuid"`
	Start        string            `json:"start" binding:"required"`
	End          string            `json:"end" binding:"required"`
	Cells        []CellInput       `json:"cells" binding:"required"`
	Propagate    bool              `json:"propagate"`
	Restrictions RestrictionsInput `json:"restrictions"`
}

// EffectiveRuleResponse is the resolved rule for one room
type EffectiveRuleResponse struct {
	PricingType    rates.PricingType `json:"pricing_type"`
	MinAdults      int               `json:"min_adults"`
	UseMultipliers bool              `json:"use_multipliers"`
}

// SheetRoomResponse describes one room on the sheet
type SheetRoomResponse struct {
	ID                uuid.UUID             `json:"id"`
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	SortOrder         int                   `json:"sort_order"`
	IsBaseRoom        bool                  `json:"is_base_room"`
	PriceAdjustment   decimal.Decimal       `json:"price_adjustment"`
	Effective         EffectiveRuleResponse `json:"effective"`
	CombinationLabels []string              `json:"combination_labels,omitempty"`
}

// SheetMealResponse describes one meal plan on the sheet
type SheetMealResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	SortOrder       int             `json:"sort_order"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// SheetCellResponse is one grid cell with its current values
type SheetCellResponse struct {
	RoomTypeID        uuid.UUID               `json:"room_type_id"`
	MealPlanID        uuid.UUID               `json:"meal_plan_id"`
	PricingType       rates.PricingType       `json:"pricing_type"`
	PricePerNight     decimal.Decimal         `json:"price_per_night"`
	ExtraAdult        decimal.Decimal         `json:"extra_adult"`
	ExtraInfant       decimal.Decimal         `json:"extra_infant"`
	SingleSupplement  decimal.Decimal         `json:"single_supplement"`
	ChildOrderPricing []decimal.Decimal       `json:"child_order_pricing"`
	OccupancyPricing  map[int]decimal.Decimal `json:"occupancy_pricing"`
}

// SheetResponse is the full editing workspace returned to the client
type SheetResponse struct {
	MarketID       uuid.UUID           `json:"market_id"`
	MarketCode     string              `json:"market_code"`
	Currency       string              `json:"currency"`
	SeasonID       *uuid.UUID          `json:"season_id,omitempty"`
	BaseRoomID     *uuid.UUID          `json:"base_room_id,omitempty"`
	BaseMealPlanID *uuid.UUID          `json:"base_meal_plan_id,omitempty"`
	Rooms          []SheetRoomResponse `json:"rooms"`
	Meals          []SheetMealResponse `json:"meals"`
	Cells          []SheetCellResponse `json:"cells"`
}

// RateRecordResponse is one persisted rate record
type RateRecordResponse struct {
	ID                uuid.UUID               `json:"id"`
	RoomTypeID        uuid.UUID               `json:"room_type_id"`
	MealPlanID        uuid.UUID               `json:"meal_plan_id"`
	SeasonID          *uuid.UUID              `json:"season_id,omitempty"`
	StartDate         time.Time               `json:"start_date"`
	EndDate           time.Time               `json:"end_date"`
	PricingType       rates.PricingType       `json:"pricing_type"`
	UseMultipliers    bool                    `json:"use_multipliers"`
	Currency          string                  `json:"currency"`
	PricePerNight     decimal.Decimal         `json:"price_per_night"`
	ExtraAdult        decimal.Decimal         `json:"extra_adult"`
	ExtraInfant       decimal.Decimal         `json:"extra_infant"`
	SingleSupplement  decimal.Decimal         `json:"single_supplement"`
	ChildOrderPricing []decimal.Decimal       `json:"child_order_pricing"`
	OccupancyPricing  map[int]decimal.Decimal `json:"occupancy_pricing"`
	Allotment         int                     `json:"allotment"`
	MinStay           int                     `json:"min_stay"`
	MaxStay           int                     `json:"max_stay"`
	ReleaseDays       int                     `json:"release_days"`
	StopSale          bool                    `json:"stop_sale"`
	SingleStop        bool                    `json:"single_stop"`
	ClosedToArrival   bool                    `json:"closed_to_arrival"`
	ClosedToDeparture bool                    `json:"closed_to_departure"`
}

func toRateRecordResponse(r *rates.RateRecord) RateRecordResponse {
	return RateRecordResponse{
		ID:                r.ID,
		RoomTypeID:        r.RoomTypeID,
		MealPlanID:        r.MealPlanID,
		SeasonID:          r.SeasonID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		PricingType:       r.PricingType,
		UseMultipliers:    r.UseMultipliers,
		Currency:          r.Currency,
		PricePerNight:     r.PricePerNight,
		ExtraAdult:        r.ExtraAdult,
		ExtraInfant:       r.ExtraInfant,
		SingleSupplement:  r.SingleSupplement,
		ChildOrderPricing: r.ChildOrderPricing,
		OccupancyPricing:  r.OccupancyPricing,
		Allotment:         r.Allotment,
		MinStay:           r.MinStay,
		MaxStay:           r.MaxStay,
		ReleaseDays:       r.ReleaseDays,
		StopSale:          r.StopSale,
		SingleStop:        r.SingleStop,
		ClosedToArrival:   r.ClosedToArrival,
		ClosedToDeparture: r.ClosedToDeparture,
	}
}

func toSheetResponse(svc *apprates.RateSheetService, sheet *apprates.RateSheet) SheetResponse {
	resp := SheetResponse{
		MarketID:   sheet.Market.ID,
		MarketCode: sheet.Market.Code,
		Currency:   sheet.Market.Currency,
	}
	if sheet.Season != nil {
		id := sheet.Season.ID
		resp.SeasonID = &id
	}
	if sheet.HasBase {
		baseRoom, baseMeal := sheet.BaseRoomID, sheet.BaseMealPlanID
		resp.BaseRoomID = &baseRoom
		resp.BaseMealPlanID = &baseMeal
	}

	for i := range sheet.Rooms {
		room := &sheet.Rooms[i]
		rule := sheet.Effective[room.ID]
		resp.Rooms = append(resp.Rooms, SheetRoomResponse{
			ID:              room.ID,
			Code:            room.Code,
			Name:            room.Name,
			SortOrder:       room.SortOrder,
			IsBaseRoom:      room.IsBaseRoom,
			PriceAdjustment: room.PriceAdjustment,
			Effective: EffectiveRuleResponse{
				PricingType:    rule.PricingType,
				MinAdults:      rule.MinAdults,
				UseMultipliers: rule.UseMultipliers,
			},
			CombinationLabels: svc.CombinationLabels(sheet, room.ID),
		})
	}
	for i := range sheet.Meals {
		meal := &sheet.Meals[i]
		resp.Meals = append(resp.Meals, SheetMealResponse{
			ID:              meal.ID,
			Code:            meal.Code,
			Name:            meal.Name,
			SortOrder:       meal.SortOrder,
			PriceAdjustment: meal.PriceAdjustment,
		})
	}
	for i := range sheet.Rooms {
		for j := range sheet.Meals {
			cell := sheet.Grid.Get(sheet.Rooms[i].ID, sheet.Meals[j].ID)
			if cell == nil {
				continue
			}
			resp.Cells = append(resp.Cells, SheetCellResponse{
				RoomTypeID:        sheet.Rooms[i].ID,
				MealPlanID:        sheet.Meals[j].ID,
				PricingType:       cell.PricingType,
				PricePerNight:     cell.PricePerNight,
				ExtraAdult:        cell.ExtraAdult,
				ExtraInfant:       cell.ExtraInfant,
				SingleSupplement:  cell.SingleSupplement,
				ChildOrderPricing: cell.ChildOrderPricing,
				OccupancyPricing:  cell.OccupancyPricing,
			})
		}
	}
	return resp
}
