package rates

import (
	"context"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/shopspring/decimal"
)

// MealPlanService handles meal plan configuration
type MealPlanService struct {
	mealRepo rates.MealPlanRepository
}

// NewMealPlanService creates a new MealPlanService
func NewMealPlanService(mealRepo rates.MealPlanRepository) *MealPlanService {
	return &MealPlanService{mealRepo: mealRepo}
}

// Create creates a new meal plan
func (s *MealPlanService) Create(ctx context.Context, tenantID, hotelID uuid.UUID, code, name string, adjustment decimal.Decimal, sortOrder int) (*rates.MealPlan, error) {
	mp, err := rates.NewMealPlan(tenantID, hotelID, code, name)
	if err != nil {
		return nil, err
	}
	if !adjustment.IsZero() {
		mp.SetPriceAdjustment(adjustment)
	}
	mp.SortOrder = sortOrder

	if err := s.mealRepo.Save(ctx, mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// List returns the hotel's meal plans
func (s *MealPlanService) List(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.MealPlan, error) {
	return s.mealRepo.FindByHotel(ctx, tenantID, hotelID)
}

// SetPriceAdjustment updates a plan's relative-pricing percentage
func (s *MealPlanService) SetPriceAdjustment(ctx context.Context, tenantID, id uuid.UUID, pct decimal.Decimal) (*rates.MealPlan, error) {
	mp, err := s.mealRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	mp.SetPriceAdjustment(pct)
	if err := s.mealRepo.Save(ctx, mp); err != nil {
		return nil, err
	}
	return mp, nil
}

// Delete removes a meal plan
func (s *MealPlanService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.mealRepo.Delete(ctx, tenantID, id)
}

// MarketService handles market configuration
type MarketService struct {
	marketRepo rates.MarketRepository
}

// NewMarketService creates a new MarketService
func NewMarketService(marketRepo rates.MarketRepository) *MarketService {
	return &MarketService{marketRepo: marketRepo}
}

// Create creates a new market
func (s *MarketService) Create(ctx context.Context, tenantID, hotelID uuid.UUID, code, name, currency string) (*rates.Market, error) {
	market, err := rates.NewMarket(tenantID, hotelID, code, name, currency)
	if err != nil {
		return nil, err
	}
	if err := s.marketRepo.Save(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

// List returns the hotel's markets
func (s *MarketService) List(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Market, error) {
	return s.marketRepo.FindByHotel(ctx, tenantID, hotelID)
}

// SetPricingOverrides replaces a market's per-room overrides
func (s *MarketService) SetPricingOverrides(ctx context.Context, tenantID, id uuid.UUID, overrides rates.PricingOverrideList) (*rates.Market, error) {
	market, err := s.marketRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	market.SetPricingOverrides(overrides)
	if err := s.marketRepo.Save(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

// SetChildAgeGroups replaces a market's child age configuration
func (s *MarketService) SetChildAgeGroups(ctx context.Context, tenantID, id uuid.UUID, groups rates.ChildAgeGroupList) (*rates.Market, error) {
	market, err := s.marketRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	market.SetChildAgeGroups(groups)
	if err := s.marketRepo.Save(ctx, market); err != nil {
		return nil, err
	}
	return market, nil
}

// Delete removes a market
func (s *MarketService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.marketRepo.Delete(ctx, tenantID, id)
}

// SeasonService handles season configuration
type SeasonService struct {
	seasonRepo rates.SeasonRepository
}

// NewSeasonService creates a new SeasonService
func NewSeasonService(seasonRepo rates.SeasonRepository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo}
}

// Create creates a new season
func (s *SeasonService) Create(ctx context.Context, tenantID, hotelID uuid.UUID, name string, ranges rates.DateRangeList) (*rates.Season, error) {
	season, err := rates.NewSeason(tenantID, hotelID, name, ranges)
	if err != nil {
		return nil, err
	}
	if err := s.seasonRepo.Save(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// List returns the hotel's seasons
func (s *SeasonService) List(ctx context.Context, tenantID, hotelID uuid.UUID) ([]rates.Season, error) {
	return s.seasonRepo.FindByHotel(ctx, tenantID, hotelID)
}

// SetScope restricts the season to a subset of rooms and meal plans.
// Empty lists widen the season back to the whole hotel.
func (s *SeasonService) SetScope(ctx context.Context, tenantID, id uuid.UUID, roomTypes, mealPlans rates.UUIDList) (*rates.Season, error) {
	season, err := s.seasonRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	season.ActiveRoomTypes = roomTypes
	season.ActiveMealPlans = mealPlans
	season.IncrementVersion()
	if err := s.seasonRepo.Save(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// SetPricingOverrides replaces a season's per-room overrides
func (s *SeasonService) SetPricingOverrides(ctx context.Context, tenantID, id uuid.UUID, overrides rates.PricingOverrideList) (*rates.Season, error) {
	season, err := s.seasonRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	season.SetPricingOverrides(overrides)
	if err := s.seasonRepo.Save(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// Delete removes a season
func (s *SeasonService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.seasonRepo.Delete(ctx, tenantID, id)
}
