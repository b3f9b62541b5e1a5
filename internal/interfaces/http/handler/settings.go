package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/shopspring/decimal"
)

// CreateMealPlanRequest creates a meal plan for a hotel
type CreateMealPlanRequest struct {
	Code            string          `json:"code" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	SortOrder       int             `json:"sort_order"`
}

// CreateMarketRequest creates a market for a hotel
type CreateMarketRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// PricingOverrideInput is one per-room override row
type PricingOverrideInput struct {
	RoomTypeID             string `json:"room_type_id" binding:"required,uuid"`
	UseMinAdultsOverride   bool   `json:"use_min_adults_override"`
	MinAdults              int    `json:"min_adults"`
	UsePricingTypeOverride bool   `json:"use_pricing_type_override"`
	PricingType            string `json:"pricing_type"`
}

// PricingOverridesRequest replaces a market's or season's overrides
type PricingOverridesRequest struct {
	Overrides []PricingOverrideInput `json:"overrides" binding:"required"`
}

// ChildAgeGroupInput is one child age band
type ChildAgeGroupInput struct {
	Code   string `json:"code" binding:"required"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// ChildAgeGroupsRequest replaces a market's child age configuration
type ChildAgeGroupsRequest struct {
	Groups []ChildAgeGroupInput `json:"groups" binding:"required"`
}

// DateRangeInput is one season date range, ISO dates inclusive
type DateRangeInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// CreateSeasonRequest creates a season for a hotel
type CreateSeasonRequest struct {
	Name   string           `json:"name" binding:"required"`
	Ranges []DateRangeInput `json:"ranges" binding:"required"`
}

// SeasonScopeRequest restricts a season to a subset of rooms and plans
type SeasonScopeRequest struct {
	RoomTypes []string `json:"room_types"`
	MealPlans []string `json:"meal_plans"`
}

// SettingsHandler exposes meal plan, market and season configuration
type SettingsHandler struct {
	BaseHandler
	mealPlanService *apprates.MealPlanService
	marketService   *apprates.MarketService
	seasonService   *apprates.SeasonService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(
	mealPlanService *apprates.MealPlanService,
	marketService *apprates.MarketService,
	seasonService *apprates.SeasonService,
) *SettingsHandler {
	return &SettingsHandler{
		mealPlanService: mealPlanService,
		marketService:   marketService,
		seasonService:   seasonService,
	}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	hotel := r.Group("/hotels/:hotelID")
	hotel.POST("/meal-plans", h.CreateMealPlan)
	hotel.GET("/meal-plans", h.ListMealPlans)
	hotel.POST("/markets", h.CreateMarket)
	hotel.GET("/markets", h.ListMarkets)
	hotel.POST("/seasons", h.CreateSeason)
	hotel.GET("/seasons", h.ListSeasons)

	meal := r.Group("/meal-plans/:mealPlanID")
	meal.PUT("/price-adjustment", h.SetMealPlanAdjustment)
	meal.DELETE("", h.DeleteMealPlan)

	market := r.Group("/markets/:marketID")
	market.PUT("/pricing-overrides", h.SetMarketOverrides)
	market.PUT("/child-age-groups", h.SetMarketChildAgeGroups)
	market.DELETE("", h.DeleteMarket)

	season := r.Group("/seasons/:seasonID")
	season.PUT("/scope", h.SetSeasonScope)
	season.PUT("/pricing-overrides", h.SetSeasonOverrides)
	season.DELETE("", h.DeleteSeason)
}

// CreateMealPlan adds a meal plan to the hotel
func (h *SettingsHandler) CreateMealPlan(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid meal plan request")
		return
	}

	mp, err := h.mealPlanService.Create(c.Request.Context(), tenantID, hotelID, req.Code, req.Name, req.PriceAdjustment, req.SortOrder)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, mp)
}

// ListMealPlans returns the hotel's meal plans
func (h *SettingsHandler) ListMealPlans(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	meals, err := h.mealPlanService.List(c.Request.Context(), tenantID, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, meals)
}

// SetMealPlanAdjustment updates the plan's relative-pricing percentage
func (h *SettingsHandler) SetMealPlanAdjustment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	mealPlanID, ok := parseUUIDParam(c, "mealPlanID")
	if !ok {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	var req PriceAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid price adjustment request")
		return
	}

	mp, err := h.mealPlanService.SetPriceAdjustment(c.Request.Context(), tenantID, mealPlanID, req.PriceAdjustment)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mp)
}

// DeleteMealPlan removes a meal plan
func (h *SettingsHandler) DeleteMealPlan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	mealPlanID, ok := parseUUIDParam(c, "mealPlanID")
	if !ok {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	if err := h.mealPlanService.Delete(c.Request.Context(), tenantID, mealPlanID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateMarket adds a market to the hotel
func (h *SettingsHandler) CreateMarket(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid market request")
		return
	}

	market, err := h.marketService.Create(c.Request.Context(), tenantID, hotelID, req.Code, req.Name, req.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, market)
}

// ListMarkets returns the hotel's markets
func (h *SettingsHandler) ListMarkets(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	markets, err := h.marketService.List(c.Request.Context(), tenantID, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, markets)
}

// SetMarketOverrides replaces the market's per-room pricing overrides
func (h *SettingsHandler) SetMarketOverrides(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	marketID, ok := parseUUIDParam(c, "marketID")
	if !ok {
		h.BadRequest(c, "Invalid market ID")
		return
	}

	var req PricingOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid pricing overrides request")
		return
	}

	overrides, ok := h.parseOverrides(c, req.Overrides)
	if !ok {
		return
	}

	market, err := h.marketService.SetPricingOverrides(c.Request.Context(), tenantID, marketID, overrides)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, market)
}

// SetMarketChildAgeGroups replaces the market's child age bands
func (h *SettingsHandler) SetMarketChildAgeGroups(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	marketID, ok := parseUUIDParam(c, "marketID")
	if !ok {
		h.BadRequest(c, "Invalid market ID")
		return
	}

	var req ChildAgeGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid child age groups request")
		return
	}

	groups := make(rates.ChildAgeGroupList, 0, len(req.Groups))
	for _, g := range req.Groups {
		groups = append(groups, rates.ChildAgeGroup{Code: g.Code, MinAge: g.MinAge, MaxAge: g.MaxAge})
	}

	market, err := h.marketService.SetChildAgeGroups(c.Request.Context(), tenantID, marketID, groups)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, market)
}

// DeleteMarket removes a market
func (h *SettingsHandler) DeleteMarket(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	marketID, ok := parseUUIDParam(c, "marketID")
	if !ok {
		h.BadRequest(c, "Invalid market ID")
		return
	}

	if err := h.marketService.Delete(c.Request.Context(), tenantID, marketID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSeason adds a season to the hotel
func (h *SettingsHandler) CreateSeason(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	var req CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid season request")
		return
	}

	ranges := make(rates.DateRangeList, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		start, err := rates.ParseISODate(r.Start)
		if err != nil {
			h.BadRequest(c, "Invalid range start, expected YYYY-MM-DD")
			return
		}
		end, err := rates.ParseISODate(r.End)
		if err != nil {
			h.BadRequest(c, "Invalid range end, expected YYYY-MM-DD")
			return
		}
		ranges = append(ranges, rates.DateRange{Start: start, End: end})
	}

	season, err := h.seasonService.Create(c.Request.Context(), tenantID, hotelID, req.Name, ranges)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, season)
}

// ListSeasons returns the hotel's seasons
func (h *SettingsHandler) ListSeasons(c *gin.Context) {
	tenantID, hotelID, ok := h.hotelScope(c)
	if !ok {
		return
	}

	seasons, err := h.seasonService.List(c.Request.Context(), tenantID, hotelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, seasons)
}

// SetSeasonScope restricts the season to a subset of rooms and plans
func (h *SettingsHandler) SetSeasonScope(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	seasonID, ok := parseUUIDParam(c, "seasonID")
	if !ok {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	var req SeasonScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid season scope request")
		return
	}

	roomTypes, ok := h.parseUUIDList(c, req.RoomTypes, "room type")
	if !ok {
		return
	}
	mealPlans, ok := h.parseUUIDList(c, req.MealPlans, "meal plan")
	if !ok {
		return
	}

	season, err := h.seasonService.SetScope(c.Request.Context(), tenantID, seasonID, roomTypes, mealPlans)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, season)
}

// SetSeasonOverrides replaces the season's per-room pricing overrides
func (h *SettingsHandler) SetSeasonOverrides(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	seasonID, ok := parseUUIDParam(c, "seasonID")
	if !ok {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	var req PricingOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid pricing overrides request")
		return
	}

	overrides, ok := h.parseOverrides(c, req.Overrides)
	if !ok {
		return
	}

	season, err := h.seasonService.SetPricingOverrides(c.Request.Context(), tenantID, seasonID, overrides)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, season)
}

// DeleteSeason removes a season
func (h *SettingsHandler) DeleteSeason(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	seasonID, ok := parseUUIDParam(c, "seasonID")
	if !ok {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	if err := h.seasonService.Delete(c.Request.Context(), tenantID, seasonID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// hotelScope parses the tenant and hotel of the request
func (h *SettingsHandler) hotelScope(c *gin.Context) (tenantID, hotelID uuid.UUID, ok bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}
	hotelID, valid := parseUUIDParam(c, "hotelID")
	if !valid {
		h.BadRequest(c, "Invalid hotel ID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, hotelID, true
}

func (h *SettingsHandler) parseOverrides(c *gin.Context, inputs []PricingOverrideInput) (rates.PricingOverrideList, bool) {
	overrides := make(rates.PricingOverrideList, 0, len(inputs))
	for _, o := range inputs {
		roomID, err := uuid.Parse(o.RoomTypeID)
		if err != nil {
			h.BadRequest(c, "Invalid room type ID in overrides")
			return nil, false
		}
		overrides = append(overrides, rates.PricingOverride{
			RoomTypeID:             roomID,
			UseMinAdultsOverride:   o.UseMinAdultsOverride,
			MinAdults:              o.MinAdults,
			UsePricingTypeOverride: o.UsePricingTypeOverride,
			PricingType:            rates.PricingType(o.PricingType),
		})
	}
	return overrides, true
}

func (h *SettingsHandler) parseUUIDList(c *gin.Context, ids []string, what string) (rates.UUIDList, bool) {
	out := make(rates.UUIDList, 0, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			h.BadRequest(c, "Invalid "+what+" ID in scope")
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}
