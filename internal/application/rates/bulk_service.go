package rates

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ratehub/backend/internal/domain/rates"
	"github.com/ratehub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// bulkIdempotencyTTL bounds how long a submission key blocks replays
const bulkIdempotencyTTL = 24 * time.Hour

// BulkEditRequest is a sparse edit applied to an explicit cell selection.
// Edits is keyed roomTypeID -> mealPlanID -> patch; unset patch fields
// request no change.
type BulkEditRequest struct {
	TenantID uuid.UUID
	HotelID  uuid.UUID
	MarketID uuid.UUID
	SeasonID *uuid.UUID

	Cells []rates.CellRef
	Edits map[uuid.UUID]map[uuid.UUID]rates.RatePatch

	// IdempotencyKey, when set, protects against duplicate submission of
	// the same edit (e.g. a retried HTTP request)
	IdempotencyKey string
}

// BulkEditOutcome aggregates the best-effort fan-out: totals across the
// pairs that succeeded, the number of pairs written and failed, and
// whether the submission was a duplicate replay.
type BulkEditOutcome struct {
	Result       rates.BulkUpdateResult `json:"result"`
	PairsApplied int                    `json:"pairs_applied"`
	PairsFailed  int                    `json:"pairs_failed"`
	Duplicate    bool                   `json:"duplicate"`
}

// BulkEditService expands sparse bulk edits into per-pair upsert
// fan-outs against the rate repository.
type BulkEditService struct {
	roomRepo   rates.RoomTypeRepository
	marketRepo rates.MarketRepository
	seasonRepo rates.SeasonRepository
	rateRepo   rates.RateRepository
	idemStore  shared.IdempotencyStore
	logger     *zap.Logger
}

// NewBulkEditService creates a new BulkEditService
func NewBulkEditService(
	roomRepo rates.RoomTypeRepository,
	marketRepo rates.MarketRepository,
	seasonRepo rates.SeasonRepository,
	rateRepo rates.RateRepository,
	idemStore shared.IdempotencyStore,
	logger *zap.Logger,
) *BulkEditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkEditService{
		roomRepo:   roomRepo,
		marketRepo: marketRepo,
		seasonRepo: seasonRepo,
		rateRepo:   rateRepo,
		idemStore:  idemStore,
		logger:     logger,
	}
}

// Apply fans the request's price edits out: one write per (room, meal
// plan) pair that has any relevant value set, each covering every
// selected date. Writes are issued sequentially and independently; a
// failing pair is logged and counted but does not abort its siblings.
// The first error is returned alongside the accumulated outcome.
//
// With zero qualifying pairs no write is issued and ErrNothingToApply is
// returned.
func (s *BulkEditService) Apply(ctx context.Context, req BulkEditRequest) (BulkEditOutcome, error) {
	var outcome BulkEditOutcome

	if req.IdempotencyKey != "" && s.idemStore != nil {
		fresh, err := s.idemStore.MarkProcessed(ctx, req.IdempotencyKey, bulkIdempotencyTTL)
		if err != nil {
			// The store protects against duplicates, it is not a
			// precondition: fail open and let the upsert semantics absorb
			// a potential replay.
			s.logger.Warn("idempotency store unavailable, continuing",
				zap.String("key", req.IdempotencyKey), zap.Error(err))
		} else if !fresh {
			outcome.Duplicate = true
			return outcome, nil
		}
	}

	market, err := s.marketRepo.FindByID(ctx, req.TenantID, req.MarketID)
	if err != nil {
		return outcome, err
	}
	var season *rates.Season
	if req.SeasonID != nil {
		if season, err = s.seasonRepo.FindByID(ctx, req.TenantID, *req.SeasonID); err != nil {
			return outcome, err
		}
	}
	rooms, err := s.roomRepo.FindByHotel(ctx, req.TenantID, req.HotelID)
	if err != nil {
		return outcome, err
	}
	roomsByID := make(map[uuid.UUID]*rates.RoomType, len(rooms))
	for i := range rooms {
		roomsByID[rooms[i].ID] = &rooms[i]
	}

	dates := rates.DistinctDates(req.Cells)

	var firstErr error
	for _, pair := range sortedPairs(req.Edits) {
		patch := req.Edits[pair.roomID][pair.mealID]
		room := roomsByID[pair.roomID]

		effective := rates.EffectivePricingType(room, market, season)
		useMultipliers := rates.EffectiveUseMultipliers(room, market, season)

		if !patch.HasAnyPriceValue(effective, useMultipliers) {
			continue
		}

		normalized := patch.NormalizedForModel(effective, useMultipliers)
		refs := rates.ExpandPair(dates, pair.roomID, pair.mealID)

		res, err := s.rateRepo.BulkUpdateByDates(ctx, req.TenantID, req.HotelID, req.MarketID, refs, normalized)
		if err != nil {
			outcome.PairsFailed++
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Error("bulk rate update failed for pair",
				zap.String("room_type", truncateID(pair.roomID)),
				zap.String("meal_plan", truncateID(pair.mealID)),
				zap.Int("dates", len(refs)),
				zap.Error(err))
			continue
		}

		outcome.PairsApplied++
		outcome.Result.Add(res)
	}

	if outcome.PairsApplied == 0 && outcome.PairsFailed == 0 {
		return outcome, shared.ErrNothingToApply
	}

	s.logger.Info("bulk rate update finished",
		zap.Int("pairs_applied", outcome.PairsApplied),
		zap.Int("pairs_failed", outcome.PairsFailed),
		zap.Int("created", outcome.Result.Created),
		zap.Int("updated", outcome.Result.Updated),
		zap.Int("split", outcome.Result.Split))

	return outcome, firstErr
}

// ApplyRestrictions submits inventory and restriction fields across the
// whole selection in one fan-out, bypassing per-pair pricing resolution.
func (s *BulkEditService) ApplyRestrictions(ctx context.Context, req BulkEditRequest, patch rates.RatePatch) (BulkEditOutcome, error) {
	var outcome BulkEditOutcome

	restr := patch.RestrictionsOnly()
	if !restr.HasAnyRestriction() {
		return outcome, shared.ErrNothingToApply
	}
	if len(req.Cells) == 0 {
		return outcome, shared.ErrNothingToApply
	}

	res, err := s.rateRepo.BulkUpdateByDates(ctx, req.TenantID, req.HotelID, req.MarketID, req.Cells, restr)
	if err != nil {
		return outcome, err
	}

	outcome.PairsApplied = 1
	outcome.Result = res
	return outcome, nil
}

type pairKey struct {
	roomID uuid.UUID
	mealID uuid.UUID
}

// sortedPairs flattens the two-level edit map into a deterministic order,
// so fan-out sequencing and error attribution are reproducible
func sortedPairs(edits map[uuid.UUID]map[uuid.UUID]rates.RatePatch) []pairKey {
	pairs := make([]pairKey, 0, len(edits))
	for roomID, inner := range edits {
		for mealID := range inner {
			pairs = append(pairs, pairKey{roomID: roomID, mealID: mealID})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].roomID != pairs[j].roomID {
			return pairs[i].roomID.String() < pairs[j].roomID.String()
		}
		return pairs[i].mealID.String() < pairs[j].mealID.String()
	})
	return pairs
}

// truncateID shortens a UUID for log display
func truncateID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
