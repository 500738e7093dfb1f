package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/inbound"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/outbound"
	"github.com/grekooss/lowcarbplaner-portfolio/pkg/errors"
)

// WeeklyHorizonDays is the standard generation horizon.
const WeeklyHorizonDays = 7

// defaultCacheTTL bounds how long a cached weekly plan stays warm.
const defaultCacheTTL = 24 * time.Hour

// PlanService implements the meal plan generation use cases. All engine
// state (catalog index, reservations, random source) is per call, so a
// single instance serves concurrent requests.
type PlanService struct {
	catalog  outbound.RecipeCatalog
	meals    outbound.PlannedMealRepository
	cache    outbound.CacheRepository
	logger   *zap.Logger
	seed     int64
	seeded   bool
	passes   int
	cacheTTL time.Duration
}

// Option configures a PlanService.
type Option func(*PlanService)

// WithSeed fixes the random source so generation is reproducible.
func WithSeed(seed int64) Option {
	return func(s *PlanService) {
		s.seed = seed
		s.seeded = true
	}
}

// WithMaxPasses overrides the optimizer's pass limit.
func WithMaxPasses(n int) Option {
	return func(s *PlanService) { s.passes = n }
}

// WithCacheTTL overrides the weekly plan cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *PlanService) { s.cacheTTL = ttl }
}

// NewPlanService creates the meal plan service.
func NewPlanService(
	catalog outbound.RecipeCatalog,
	meals outbound.PlannedMealRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
	opts ...Option,
) *PlanService {
	s := &PlanService{
		catalog:  catalog,
		meals:    meals,
		cache:    cache,
		logger:   logger.Named("plan-service"),
		passes:   DefaultMaxPasses,
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify interface compliance
var _ inbound.MealPlanService = (*PlanService)(nil)

// GeneratePlan assembles and optimizes one day plan per requested date.
func (s *PlanService) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) ([]plan.DayPlan, error) {
	cfg, err := s.validateCommand(cmd.Dates, cmd.Targets, cmd.PlanType, cmd.SelectedSlots)
	if err != nil {
		return nil, err
	}

	recipes, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("fetch recipe catalog", err)
	}

	dates := sortedDates(cmd.Dates)
	index := BuildIndex(recipes, cmd.ExcludedEquipmentIDs)
	selector := NewSelector(index, s.newRand(), s.logger)
	assembler := NewDayAssembler(selector, s.logger)
	optimizer := NewDayOptimizer(s.passes, s.logger)
	reservations := NewReservations()

	s.logger.Info("Generating meal plan",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("days", len(dates)),
		zap.String("plan_type", string(cmd.PlanType)),
		zap.Float64("target_calories", cmd.Targets.Calories),
		zap.Int("catalog_size", len(recipes)),
	)

	days := make([]plan.DayPlan, 0, len(dates))
	assignments := 0
	for i := range dates {
		day, dayRecipes, err := assembler.AssembleDay(dates, i, cmd.Targets, cfg, reservations)
		if err != nil {
			return nil, err
		}
		optimizer.Optimize(&day, dayRecipes, cmd.Targets)
		days = append(days, day)
		assignments += len(day.Meals)
	}

	if want := len(dates) * len(cfg.Slots); assignments != want {
		return nil, errors.NewPlanConsistencyError(assignments, want)
	}

	if cmd.Persist {
		if err := s.meals.BulkCreate(ctx, cmd.UserID, days); err != nil {
			return nil, errors.NewDatabaseError("persist planned meals", err)
		}
		s.invalidateCache(ctx, cmd.UserID)
	}

	s.logger.Info("Meal plan generated",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("days", len(days)),
		zap.Int("assignments", assignments),
		zap.Bool("persisted", cmd.Persist),
	)
	return days, nil
}

// GenerateWeeklyPlan generates, persists and caches the standard 7-day
// horizon starting at cmd.StartDate.
func (s *PlanService) GenerateWeeklyPlan(ctx context.Context, cmd inbound.GenerateWeeklyPlanCommand) ([]plan.DayPlan, error) {
	dates := make([]time.Time, WeeklyHorizonDays)
	for i := range dates {
		dates[i] = cmd.StartDate.AddDate(0, 0, i)
	}

	days, err := s.GeneratePlan(ctx, inbound.GeneratePlanCommand{
		UserID:               cmd.UserID,
		Dates:                dates,
		Targets:              cmd.Targets,
		PlanType:             cmd.PlanType,
		SelectedSlots:        cmd.SelectedSlots,
		ExcludedEquipmentIDs: cmd.ExcludedEquipmentIDs,
		Persist:              true,
	})
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(days); err == nil {
		if err := s.cache.Set(ctx, planCacheKey(cmd.UserID), payload, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache weekly plan",
				zap.String("user_id", cmd.UserID.String()),
				zap.Error(err),
			)
		}
	}
	return days, nil
}

// GetWeeklyPlan returns the stored 7-day plan starting at startDate. A
// warm cache entry for the same week is served directly; otherwise the
// plan is rebuilt from the repository and re-cached.
func (s *PlanService) GetWeeklyPlan(ctx context.Context, userID uuid.UUID, startDate time.Time) ([]plan.DayPlan, error) {
	key := planCacheKey(userID)
	if payload, err := s.cache.Get(ctx, key); err == nil {
		var days []plan.DayPlan
		if json.Unmarshal(payload, &days) == nil &&
			len(days) > 0 && plan.DateKey(days[0].Date) == plan.DateKey(startDate) {
			s.logger.Debug("Served weekly plan from cache",
				zap.String("user_id", userID.String()),
			)
			return days, nil
		}
	} else if !outbound.IsCacheMiss(err) {
		s.logger.Warn("Failed to read plan cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	end := startDate.AddDate(0, 0, WeeklyHorizonDays-1)
	assignments, err := s.meals.FindInRange(ctx, userID, startDate, end)
	if err != nil {
		return nil, errors.NewDatabaseError("load planned meals", err)
	}

	days := groupByDay(assignments)
	if len(days) > 0 {
		if payload, err := json.Marshal(days); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
				s.logger.Warn("Failed to cache weekly plan",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
			}
		}
	}
	return days, nil
}

// FindMissingDays returns the dates lacking a complete set of slot
// assignments. Generating only the returned subset makes regeneration
// idempotent: a second call right after a full generation returns nothing.
func (s *PlanService) FindMissingDays(ctx context.Context, userID uuid.UUID, dates []time.Time, planType plan.PlanType, selectedSlots []recipe.MealSlot) ([]time.Time, error) {
	cfg, err := plan.ResolveConfig(planType, selectedSlots)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	assigned, err := s.meals.FindAssignedSlots(ctx, userID, dates)
	if err != nil {
		return nil, errors.NewDatabaseError("look up assigned slots", err)
	}

	var missing []time.Time
	for _, date := range sortedDates(dates) {
		slots := assigned[plan.DateKey(date)]
		for _, slot := range cfg.Slots {
			if !slots[slot] {
				missing = append(missing, date)
				break
			}
		}
	}
	return missing, nil
}

// CheckExistingPlan counts assignments already stored in [start, end].
func (s *PlanService) CheckExistingPlan(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	count, err := s.meals.CountInRange(ctx, userID, start, end)
	if err != nil {
		return 0, errors.NewDatabaseError("count planned meals", err)
	}
	return count, nil
}

// CleanupOldPlans deletes assignments dated before the cutoff.
func (s *PlanService) CleanupOldPlans(ctx context.Context, userID uuid.UUID, before time.Time) (int, error) {
	deleted, err := s.meals.DeleteBefore(ctx, userID, before)
	if err != nil {
		return 0, errors.NewDatabaseError("delete old planned meals", err)
	}
	if deleted > 0 {
		s.invalidateCache(ctx, userID)
		s.logger.Info("Cleaned up old planned meals",
			zap.String("user_id", userID.String()),
			zap.Int("deleted", deleted),
			zap.String("before", plan.DateKey(before)),
		)
	}
	return deleted, nil
}

func (s *PlanService) validateCommand(dates []time.Time, targets plan.NutritionTargets, planType plan.PlanType, selectedSlots []recipe.MealSlot) (plan.Config, error) {
	if len(dates) == 0 {
		return plan.Config{}, errors.NewValidationError(plan.ErrNoDates.Error()).WithCause(plan.ErrNoDates)
	}
	if targets.Calories <= 0 {
		return plan.Config{}, errors.NewValidationError(plan.ErrInvalidTargets.Error()).WithCause(plan.ErrInvalidTargets)
	}
	if planType == plan.PlanTwoMain && len(selectedSlots) != 2 {
		return plan.Config{}, errors.NewValidationError(plan.ErrInvalidSelection.Error()).WithCause(plan.ErrInvalidSelection)
	}
	cfg, err := plan.ResolveConfig(planType, selectedSlots)
	if err != nil {
		return plan.Config{}, errors.NewValidationError(err.Error()).WithCause(err)
	}
	return cfg, nil
}

// newRand builds the per-call random source. Each call gets its own so
// concurrent generations never share rand state.
func (s *PlanService) newRand() *rand.Rand {
	if s.seeded {
		return rand.New(rand.NewSource(s.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (s *PlanService) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, planCacheKey(userID)); err != nil {
		s.logger.Warn("Failed to invalidate plan cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func planCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("mealplan:weekly:%s", userID)
}

// groupByDay folds flat assignments into day plans ordered by date, with
// each day's meals in slot day order.
func groupByDay(assignments []plan.MealAssignment) []plan.DayPlan {
	sorted := make([]plan.MealAssignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Slot.DayOrder() < sorted[j].Slot.DayOrder()
	})

	var days []plan.DayPlan
	for _, a := range sorted {
		if len(days) == 0 || !days[len(days)-1].Date.Equal(a.Date) {
			days = append(days, plan.DayPlan{Date: a.Date})
		}
		days[len(days)-1].Meals = append(days[len(days)-1].Meals, a)
	}
	return days
}

func sortedDates(dates []time.Time) []time.Time {
	out := make([]time.Time, len(dates))
	copy(out, dates)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
