package rates

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
)

// EffectiveRule is the resolved pricing rule for one room under the
// sheet's market and season selection
type EffectiveRule struct {
	PricingType    rates.PricingType `json:"pricing_type"`
	MinAdults      int               `json:"min_adults"`
	UseMultipliers bool              `json:"use_multipliers"`
}

// RateSheet is the editing workspace for one (hotel, market, season)
// selection: the rooms and meal plans in scope, the effective rule per
// room, and the cell grid the operator edits. It lives for the duration
// of the editing workflow and is discarded after a successful submit.
type RateSheet struct {
	TenantID uuid.UUID
	HotelID  uuid.UUID
	Market   *rates.Market
	Season   *rates.Season

	Rooms []rates.RoomType
	Meals []rates.MealPlan

	Effective map[uuid.UUID]EffectiveRule
	Grid      *rates.CellGrid

	BaseRoomID     uuid.UUID
	BaseMealPlanID uuid.UUID
	HasBase        bool
}

// SubmitPeriod carries the date range and restrictions applied to every
// record of a single-period submit
type SubmitPeriod struct {
	Start        time.Time
	End          time.Time
	Restrictions rates.Restrictions
}

// SubmitResult reports how many records a submit produced
type SubmitResult struct {
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
}

// RateSheetService owns the rate editing workflow: it seeds sheets,
// re-resolves effective rules and relative prices on explicit triggers,
// and turns a sheet into persisted rate records on submit.
type RateSheetService struct {
	roomRepo   rates.RoomTypeRepository
	mealRepo   rates.MealPlanRepository
	marketRepo rates.MarketRepository
	seasonRepo rates.SeasonRepository
	rateRepo   rates.RateRepository
}

// NewRateSheetService creates a new RateSheetService
func NewRateSheetService(
	roomRepo rates.RoomTypeRepository,
	mealRepo rates.MealPlanRepository,
	marketRepo rates.MarketRepository,
	seasonRepo rates.SeasonRepository,
	rateRepo rates.RateRepository,
) *RateSheetService {
	return &RateSheetService{
		roomRepo:   roomRepo,
		mealRepo:   mealRepo,
		marketRepo: marketRepo,
		seasonRepo: seasonRepo,
		rateRepo:   rateRepo,
	}
}

// BuildSheet loads the rooms, meal plans, market and optional season for
// the selection, resolves the effective rule per room and seeds a zeroed
// cell for every (room, meal plan) pair in scope.
func (s *RateSheetService) BuildSheet(ctx context.Context, tenantID, hotelID, marketID uuid.UUID, seasonID *uuid.UUID) (*RateSheet, error) {
	market, err := s.marketRepo.FindByID(ctx, tenantID, marketID)
	if err != nil {
		return nil, err
	}

	var season *rates.Season
	if seasonID != nil {
		season, err = s.seasonRepo.FindByID(ctx, tenantID, *seasonID)
		if err != nil {
			return nil, err
		}
	}

	rooms, err := s.roomRepo.FindByHotel(ctx, tenantID, hotelID)
	if err != nil {
		return nil, err
	}
	meals, err := s.mealRepo.FindByHotel(ctx, tenantID, hotelID)
	if err != nil {
		return nil, err
	}

	// A season may narrow the sheet to a subset of rooms and meal plans
	rooms = filterRooms(rooms, season)
	meals = filterMeals(meals, season)
	sortRooms(rooms)
	sortMeals(meals)

	sheet := &RateSheet{
		TenantID: tenantID,
		HotelID:  hotelID,
		Market:   market,
		Season:   season,
		Rooms:    rooms,
		Meals:    meals,
		Grid:     rates.NewCellGrid(),
	}

	s.RefreshEffective(sheet)

	for i := range rooms {
		room := &rooms[i]
		rule := sheet.Effective[room.ID]
		for j := range meals {
			sheet.Grid.Put(room.ID, meals[j].ID, rates.NewRateCell(room, rule.PricingType))
		}
	}

	if base, ok := rates.FindBaseRoom(rooms); ok && len(meals) > 0 {
		sheet.BaseRoomID = base.ID
		// the first meal plan in sort order is the designated base plan
		sheet.BaseMealPlanID = meals[0].ID
		sheet.HasBase = true
	}

	return sheet, nil
}

// RefreshEffective re-resolves the effective rule for every room on the
// sheet. Must be called whenever the room list, market or season
// selection changes; the resolution is selection-dependent and is never
// cached across selections.
func (s *RateSheetService) RefreshEffective(sheet *RateSheet) {
	sheet.Effective = make(map[uuid.UUID]EffectiveRule, len(sheet.Rooms))
	for i := range sheet.Rooms {
		room := &sheet.Rooms[i]
		rule := EffectiveRule{
			PricingType:    rates.EffectivePricingType(room, sheet.Market, sheet.Season),
			MinAdults:      rates.EffectiveMinAdults(room, sheet.Market, sheet.Season),
			UseMultipliers: rates.EffectiveUseMultipliers(room, sheet.Market, sheet.Season),
		}
		sheet.Effective[room.ID] = rule

		if sheet.Grid != nil {
			for j := range sheet.Meals {
				if cell := sheet.Grid.Get(room.ID, sheet.Meals[j].ID); cell != nil {
					cell.PricingType = rule.PricingType
				}
			}
		}
	}
}

// RecomputeRelative fans the base cell out to every other cell. It is a
// full recompute and must be invoked after every change to the base
// cell's price fields.
func (s *RateSheetService) RecomputeRelative(sheet *RateSheet) {
	if !sheet.HasBase {
		return
	}
	rates.PropagateRelative(sheet.Grid, sheet.Rooms, sheet.Meals, sheet.BaseRoomID, sheet.BaseMealPlanID)
}

// CombinationLabels renders the human-facing occupancy labels for a
// room's multiplier table, using the selection's child age configuration
func (s *RateSheetService) CombinationLabels(sheet *RateSheet, roomTypeID uuid.UUID) []string {
	groups := rates.EffectiveChildAgeGroups(sheet.Market, sheet.Season)
	for i := range sheet.Rooms {
		if sheet.Rooms[i].ID != roomTypeID {
			continue
		}
		labels := make([]string, 0, len(sheet.Rooms[i].CombinationTable))
		for _, combo := range sheet.Rooms[i].CombinationTable {
			if !combo.IsActive {
				continue
			}
			labels = append(labels, rates.FormatCombination(combo, groups))
		}
		return labels
	}
	return nil
}

// SuggestNextPeriod proposes the next pricing window for the selection:
// the day after the latest persisted rate, else the season's start, else
// today.
func (s *RateSheetService) SuggestNextPeriod(ctx context.Context, tenantID, hotelID, marketID uuid.UUID, season *rates.Season) (rates.Period, error) {
	last, err := s.rateRepo.LatestRateDate(ctx, tenantID, hotelID, marketID)
	if err != nil {
		return rates.Period{}, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return rates.SuggestNextPeriod(last, season, today), nil
}

// FindSeason loads a season by ID
func (s *RateSheetService) FindSeason(ctx context.Context, tenantID, seasonID uuid.UUID) (*rates.Season, error) {
	return s.seasonRepo.FindByID(ctx, tenantID, seasonID)
}

// ListRates returns the persisted records for a hotel and market
func (s *RateSheetService) ListRates(ctx context.Context, tenantID, hotelID, marketID uuid.UUID) ([]rates.RateRecord, error) {
	return s.rateRepo.GetRates(ctx, tenantID, hotelID, marketID)
}

// Submit turns every usable cell of the sheet into one rate record for
// the given period. Submission is blocked up front when no cell carries a
// usable price; cells that are merely unusable are skipped, not errors.
func (s *RateSheetService) Submit(ctx context.Context, sheet *RateSheet, period SubmitPeriod) (SubmitResult, error) {
	var result SubmitResult

	usable := 0
	for i := range sheet.Rooms {
		rule := sheet.Effective[sheet.Rooms[i].ID]
		for j := range sheet.Meals {
			cell := sheet.Grid.Get(sheet.Rooms[i].ID, sheet.Meals[j].ID)
			if cell.HasUsablePrice(rule.PricingType, rule.UseMultipliers, rule.MinAdults) {
				usable++
			}
		}
	}
	if usable == 0 {
		return result, shared.ErrNoUsablePrice
	}

	var seasonID *uuid.UUID
	if sheet.Season != nil {
		id := sheet.Season.ID
		seasonID = &id
	}

	for i := range sheet.Rooms {
		room := &sheet.Rooms[i]
		rule := sheet.Effective[room.ID]
		for j := range sheet.Meals {
			meal := &sheet.Meals[j]
			cell := sheet.Grid.Get(room.ID, meal.ID)
			if !cell.HasUsablePrice(rule.PricingType, rule.UseMultipliers, rule.MinAdults) {
				result.Skipped++
				continue
			}

			normalized := cell.Clone().NormalizeForPersist(rule.PricingType, rule.UseMultipliers)
			record, err := rates.NewRateRecord(
				sheet.TenantID, sheet.HotelID, room.ID, meal.ID, sheet.Market.ID,
				seasonID, period.Start, period.End,
				sheet.Market.Currency, normalized, rule.UseMultipliers, period.Restrictions,
			)
			if err != nil {
				return result, err
			}
			if err := s.rateRepo.CreateRate(ctx, record); err != nil {
				return result, err
			}
			result.Published++
		}
	}

	return result, nil
}

func filterRooms(rooms []rates.RoomType, season *rates.Season) []rates.RoomType {
	if season == nil {
		return rooms
	}
	out := rooms[:0]
	for _, r := range rooms {
		if season.AppliesToRoomType(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func filterMeals(meals []rates.MealPlan, season *rates.Season) []rates.MealPlan {
	if season == nil {
		return meals
	}
	out := meals[:0]
	for _, m := range meals {
		if season.AppliesToMealPlan(m.ID) {
			out = append(out, m)
		}
	}
	return out
}

func sortRooms(rooms []rates.RoomType) {
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].SortOrder < rooms[j].SortOrder })
}

func sortMeals(meals []rates.MealPlan) {
	sort.SliceStable(meals, func(i, j int) bool { return meals[i].SortOrder < meals[j].SortOrder })
}
