package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/memory"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/inbound"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/outbound"
	"github.com/grekooss/lowcarbplaner-portfolio/pkg/errors"
	"github.com/grekooss/lowcarbplaner-portfolio/test/testutils"
)

// stubCatalog serves a fixed recipe list
type stubCatalog struct {
	recipes []recipe.Recipe
	err     error
}

func (c *stubCatalog) FetchAll(ctx context.Context) ([]recipe.Recipe, error) {
	return c.recipes, c.err
}

// fakeMealRepo keeps planned meals in memory
type fakeMealRepo struct {
	meals map[uuid.UUID][]plan.MealAssignment
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{meals: make(map[uuid.UUID][]plan.MealAssignment)}
}

func (r *fakeMealRepo) BulkCreate(ctx context.Context, userID uuid.UUID, days []plan.DayPlan) error {
	for _, day := range days {
		r.meals[userID] = append(r.meals[userID], day.Meals...)
	}
	return nil
}

func (r *fakeMealRepo) FindAssignedSlots(ctx context.Context, userID uuid.UUID, dates []time.Time) (map[string]map[recipe.MealSlot]bool, error) {
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[plan.DateKey(d)] = true
	}
	assigned := make(map[string]map[recipe.MealSlot]bool)
	for _, meal := range r.meals[userID] {
		key := plan.DateKey(meal.Date)
		if !wanted[key] {
			continue
		}
		if assigned[key] == nil {
			assigned[key] = make(map[recipe.MealSlot]bool)
		}
		assigned[key][meal.Slot] = true
	}
	return assigned, nil
}

func (r *fakeMealRepo) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]plan.MealAssignment, error) {
	var out []plan.MealAssignment
	for _, meal := range r.meals[userID] {
		if !meal.Date.Before(start) && !meal.Date.After(end) {
			out = append(out, meal)
		}
	}
	return out, nil
}

func (r *fakeMealRepo) CountInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	count := 0
	for _, meal := range r.meals[userID] {
		if !meal.Date.Before(start) && !meal.Date.After(end) {
			count++
		}
	}
	return count, nil
}

func (r *fakeMealRepo) DeleteBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error) {
	var kept []plan.MealAssignment
	deleted := 0
	for _, meal := range r.meals[userID] {
		if meal.Date.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, meal)
	}
	r.meals[userID] = kept
	return deleted, nil
}

var _ outbound.PlannedMealRepository = (*fakeMealRepo)(nil)

// PlanServiceTestSuite tests the meal plan service end to end against an
// in-memory catalog.
type PlanServiceTestSuite struct {
	suite.Suite

	catalog *stubCatalog
	meals   *fakeMealRepo
	cache   outbound.CacheRepository
	service *PlanService

	userID  uuid.UUID
	targets plan.NutritionTargets
	dates   []time.Time
}

func TestPlanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlanServiceTestSuite))
}

func (s *PlanServiceTestSuite) SetupTest() {
	factory := testutils.NewCatalogFactory(1)
	s.catalog = &stubCatalog{
		recipes: factory.Catalog(150, 200, 450, 500, 550, 600, 650, 700),
	}
	s.meals = newFakeMealRepo()
	s.cache = memory.NewCacheRepository()
	s.service = NewPlanService(s.catalog, s.meals, s.cache, zap.NewNop(), WithSeed(42))

	s.userID = uuid.New()
	s.targets = plan.NutritionTargets{Calories: 1800, Protein: 130, Carbs: 80, Fat: 110}

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	s.dates = make([]time.Time, 7)
	for i := range s.dates {
		s.dates[i] = start.AddDate(0, 0, i)
	}
}

func (s *PlanServiceTestSuite) generate(persist bool) []plan.DayPlan {
	days, err := s.service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
		UserID:   s.userID,
		Dates:    s.dates,
		Targets:  s.targets,
		PlanType: plan.PlanThreeMain,
		Persist:  persist,
	})
	s.Require().NoError(err)
	return days
}

func (s *PlanServiceTestSuite) TestGeneratePlanCoverage() {
	days := s.generate(false)

	s.Require().Len(days, 7)
	for i, day := range days {
		s.Equal(s.dates[i], day.Date)
		s.Require().Len(day.Meals, 3)
		s.Equal(recipe.SlotBreakfast, day.Meals[0].Slot)
		s.Equal(recipe.SlotLunch, day.Meals[1].Slot)
		s.Equal(recipe.SlotDinner, day.Meals[2].Slot)
	}
}

func (s *PlanServiceTestSuite) TestGeneratePlanBandConformance() {
	days := s.generate(false)
	cfg, err := plan.ResolveConfig(plan.PlanThreeMain, nil)
	s.Require().NoError(err)

	byID := make(map[uuid.UUID]recipe.Recipe)
	for _, r := range s.catalog.recipes {
		byID[r.ID] = r
	}

	for _, day := range days {
		for _, meal := range day.Meals {
			band := BandForSlot(s.targets, cfg, meal.Slot)
			r := byID[meal.RecipeID]
			ext := band.Extended()
			s.GreaterOrEqual(r.Nutrition.Calories, ext.Min)
			s.LessOrEqual(r.Nutrition.Calories, ext.Max)
		}
	}
}

func (s *PlanServiceTestSuite) TestGeneratePlanOverrideBounds() {
	days := s.generate(false)

	byID := make(map[uuid.UUID]recipe.Recipe)
	for _, r := range s.catalog.recipes {
		byID[r.ID] = r
	}

	for _, day := range days {
		for _, meal := range day.Meals {
			r := byID[meal.RecipeID]
			for _, o := range meal.Overrides {
				var base float64
				for _, ing := range r.Ingredients {
					if ing.IngredientID == o.IngredientID {
						base = ing.BaseAmount
					}
				}
				s.Require().Greater(base, 0.0)
				s.GreaterOrEqual(o.NewAmount, base*0.5)
				s.LessOrEqual(o.NewAmount, base*1.2)
				s.True(o.AutoAdjusted)
			}
		}
	}
}

func (s *PlanServiceTestSuite) TestGeneratePlanDeterministicWithSeed() {
	first := s.generate(false)
	second := s.generate(false)

	s.Require().Len(second, len(first))
	for i := range first {
		s.Require().Len(second[i].Meals, len(first[i].Meals))
		for j := range first[i].Meals {
			s.Equal(first[i].Meals[j].RecipeID, second[i].Meals[j].RecipeID)
		}
	}
}

func (s *PlanServiceTestSuite) TestGeneratePlanPersists() {
	s.generate(true)

	count, err := s.service.CheckExistingPlan(context.Background(), s.userID, s.dates[0], s.dates[6])
	s.Require().NoError(err)
	s.Equal(21, count)
}

func (s *PlanServiceTestSuite) TestGeneratePlanWithoutPersist() {
	s.generate(false)

	count, err := s.service.CheckExistingPlan(context.Background(), s.userID, s.dates[0], s.dates[6])
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PlanServiceTestSuite) TestFindMissingDays() {
	ctx := context.Background()

	missing, err := s.service.FindMissingDays(ctx, s.userID, s.dates, plan.PlanThreeMain, nil)
	s.Require().NoError(err)
	s.Len(missing, 7, "nothing stored yet")

	s.generate(true)

	missing, err = s.service.FindMissingDays(ctx, s.userID, s.dates, plan.PlanThreeMain, nil)
	s.Require().NoError(err)
	s.Empty(missing, "a full plan leaves no gaps")
}

func (s *PlanServiceTestSuite) TestFindMissingDaysPartialCoverage() {
	ctx := context.Background()

	// Store a breakfast-only day: the slot set is incomplete
	s.meals.meals[s.userID] = []plan.MealAssignment{
		{Date: s.dates[0], Slot: recipe.SlotBreakfast, RecipeID: uuid.New()},
	}

	missing, err := s.service.FindMissingDays(ctx, s.userID, s.dates[:1], plan.PlanThreeMain, nil)
	s.Require().NoError(err)
	s.Len(missing, 1)
}

func (s *PlanServiceTestSuite) TestCleanupOldPlans() {
	ctx := context.Background()
	s.generate(true)

	deleted, err := s.service.CleanupOldPlans(ctx, s.userID, s.dates[3])
	s.Require().NoError(err)
	s.Equal(9, deleted, "three days of three meals removed")

	count, err := s.service.CheckExistingPlan(ctx, s.userID, s.dates[0], s.dates[6])
	s.Require().NoError(err)
	s.Equal(12, count)
}

func (s *PlanServiceTestSuite) TestGenerateWeeklyPlanCaches() {
	ctx := context.Background()

	days, err := s.service.GenerateWeeklyPlan(ctx, inbound.GenerateWeeklyPlanCommand{
		UserID:    s.userID,
		StartDate: s.dates[0],
		Targets:   s.targets,
		PlanType:  plan.PlanThreeMain,
	})
	s.Require().NoError(err)
	s.Len(days, 7)

	exists, err := s.cache.Exists(ctx, planCacheKey(s.userID))
	s.Require().NoError(err)
	s.True(exists)

	count, err := s.service.CheckExistingPlan(ctx, s.userID, s.dates[0], s.dates[6])
	s.Require().NoError(err)
	s.Equal(21, count, "weekly plans always persist")
}

func (s *PlanServiceTestSuite) TestGetWeeklyPlanServedFromCache() {
	ctx := context.Background()

	generated, err := s.service.GenerateWeeklyPlan(ctx, inbound.GenerateWeeklyPlanCommand{
		UserID:    s.userID,
		StartDate: s.dates[0],
		Targets:   s.targets,
		PlanType:  plan.PlanThreeMain,
	})
	s.Require().NoError(err)

	// Wipe the repository: a cache hit must not touch it
	s.meals.meals = make(map[uuid.UUID][]plan.MealAssignment)

	got, err := s.service.GetWeeklyPlan(ctx, s.userID, s.dates[0])
	s.Require().NoError(err)
	s.Require().Len(got, 7)
	for i := range generated {
		s.Require().Len(got[i].Meals, len(generated[i].Meals))
		for j := range generated[i].Meals {
			s.Equal(generated[i].Meals[j].RecipeID, got[i].Meals[j].RecipeID)
		}
	}
}

func (s *PlanServiceTestSuite) TestGetWeeklyPlanRebuildsFromStore() {
	ctx := context.Background()
	s.generate(true)

	// Cold cache: generate(true) invalidates, so the read must hit the
	// repository and warm the cache again
	exists, err := s.cache.Exists(ctx, planCacheKey(s.userID))
	s.Require().NoError(err)
	s.Require().False(exists)

	got, err := s.service.GetWeeklyPlan(ctx, s.userID, s.dates[0])
	s.Require().NoError(err)
	s.Require().Len(got, 7)
	for i, day := range got {
		s.Equal(s.dates[i], day.Date)
		s.Require().Len(day.Meals, 3)
		s.Equal(recipe.SlotBreakfast, day.Meals[0].Slot)
		s.Equal(recipe.SlotLunch, day.Meals[1].Slot)
		s.Equal(recipe.SlotDinner, day.Meals[2].Slot)
	}

	exists, err = s.cache.Exists(ctx, planCacheKey(s.userID))
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PlanServiceTestSuite) TestGetWeeklyPlanEmptyWhenNothingStored() {
	got, err := s.service.GetWeeklyPlan(context.Background(), s.userID, s.dates[0])
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PlanServiceTestSuite) TestGetWeeklyPlanIgnoresStaleCacheWeek() {
	ctx := context.Background()

	_, err := s.service.GenerateWeeklyPlan(ctx, inbound.GenerateWeeklyPlanCommand{
		UserID:    s.userID,
		StartDate: s.dates[0],
		Targets:   s.targets,
		PlanType:  plan.PlanThreeMain,
	})
	s.Require().NoError(err)

	// A different week must bypass the cached entry and read the store
	nextWeek := s.dates[0].AddDate(0, 0, 7)
	got, err := s.service.GetWeeklyPlan(ctx, s.userID, nextWeek)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PlanServiceTestSuite) TestGeneratePlanValidation() {
	ctx := context.Background()

	s.Run("no dates", func() {
		_, err := s.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			UserID:   s.userID,
			Targets:  s.targets,
			PlanType: plan.PlanThreeMain,
		})
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})

	s.Run("zero calorie target", func() {
		_, err := s.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			UserID:   s.userID,
			Dates:    s.dates,
			PlanType: plan.PlanThreeMain,
		})
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})

	s.Run("two-meal plan without selection", func() {
		_, err := s.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			UserID:   s.userID,
			Dates:    s.dates,
			Targets:  s.targets,
			PlanType: plan.PlanTwoMain,
		})
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})

	s.Run("unknown plan type", func() {
		_, err := s.service.GeneratePlan(ctx, inbound.GeneratePlanCommand{
			UserID:   s.userID,
			Dates:    s.dates,
			Targets:  s.targets,
			PlanType: plan.PlanType("6_main"),
		})
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})
}

func (s *PlanServiceTestSuite) TestGeneratePlanCatalogGap() {
	// Catalog without any dinner close to the 630 kcal slot target
	s.catalog.recipes = []recipe.Recipe{
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotBreakfast).WithCalories(540).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).WithCalories(630).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(2000).Build(),
	}

	_, err := s.service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
		UserID:   s.userID,
		Dates:    s.dates,
		Targets:  s.targets,
		PlanType: plan.PlanThreeMain,
	})
	s.True(errors.Is(err, errors.CodeCatalogGap))
}

func (s *PlanServiceTestSuite) TestGeneratePlanEquipmentExclusion() {
	blender := uuid.New()
	s.catalog.recipes = []recipe.Recipe{
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotBreakfast).WithCalories(540).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).WithCalories(630).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).WithCalories(600).WithEquipment(blender).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(630).Build(),
	}
	needsBlender := s.catalog.recipes[2].ID

	days, err := s.service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
		UserID:               s.userID,
		Dates:                s.dates,
		Targets:              s.targets,
		PlanType:             plan.PlanThreeMain,
		ExcludedEquipmentIDs: []uuid.UUID{blender},
	})
	s.Require().NoError(err)

	for _, day := range days {
		for _, meal := range day.Meals {
			s.NotEqual(needsBlender, meal.RecipeID)
		}
	}
}

func (s *PlanServiceTestSuite) TestGeneratePlanBatchConservation() {
	// Single batch-friendly lunch: once cooked, its two extra servings
	// must cover the next two days' lunches.
	s.catalog.recipes = []recipe.Recipe{
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotBreakfast).WithCalories(540).Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).WithCalories(630).WithServings(3).AsBatchFriendly().Build(),
		testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(630).Build(),
	}
	batchID := s.catalog.recipes[1].ID

	days, err := s.service.GeneratePlan(context.Background(), inbound.GeneratePlanCommand{
		UserID:   s.userID,
		Dates:    s.dates[:3],
		Targets:  s.targets,
		PlanType: plan.PlanThreeMain,
	})
	s.Require().NoError(err)

	for _, day := range days {
		s.Equal(batchID, day.Meals[1].RecipeID)
	}
}
