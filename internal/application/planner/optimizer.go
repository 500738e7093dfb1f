package planner

import (
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

const (
	// DefaultMaxPasses bounds the optimizer loop.
	DefaultMaxPasses = 10

	// macroThreshold: a macro only triggers a reduction when consumption
	// exceeds 105% of its target.
	macroThreshold = 1.05

	// minBaseShare: an ingredient's amount never drops below 50% of its
	// base amount, across all passes combined.
	minBaseShare = 0.5

	// maxPassReduction caps a single pass's reduction at 20% of the
	// ingredient's current amount.
	maxPassReduction = 0.2
)

// DayOptimizer pulls an assembled day's consumption down toward the
// targets by shrinking scalable ingredient amounts. Calories are priority
// one; macro overshoot beyond the threshold is priority two. Each pass
// reduces exactly one ingredient, so every reduction is re-evaluated
// against fresh day totals.
type DayOptimizer struct {
	maxPasses int
	logger    *zap.Logger
}

// NewDayOptimizer creates an optimizer. maxPasses values below 1 fall
// back to DefaultMaxPasses.
func NewDayOptimizer(maxPasses int, logger *zap.Logger) *DayOptimizer {
	if maxPasses < 1 {
		maxPasses = DefaultMaxPasses
	}
	return &DayOptimizer{
		maxPasses: maxPasses,
		logger:    logger.Named("optimizer"),
	}
}

// Optimize mutates the day's overrides in place. recipes must parallel
// day.Meals. Returns the number of passes that applied a reduction.
func (o *DayOptimizer) Optimize(day *plan.DayPlan, recipes []recipe.Recipe, targets plan.NutritionTargets) int {
	passes := 0
	for passes < o.maxPasses {
		totals := DayTotals(*day, recipes)

		applied := false
		if surplus := totals.Calories - targets.Calories; surplus > 0 {
			applied = o.reduce(day, recipes, surplus, caloriesOf)
		}
		if !applied {
			if m, surplus, ok := worstMacro(totals, targets); ok {
				applied = o.reduce(day, recipes, surplus, macroOf(m))
			}
		}
		if !applied {
			break
		}
		passes++
	}

	if passes > 0 {
		o.logger.Debug("Optimized day plan",
			zap.String("date", plan.DateKey(day.Date)),
			zap.Int("passes", passes),
		)
	}
	return passes
}

// worstMacro returns the macro with the largest surplus among those above
// the threshold.
func worstMacro(totals recipe.NutritionInfo, targets plan.NutritionTargets) (recipe.Macro, float64, bool) {
	var (
		worst   recipe.Macro
		largest float64
		found   bool
	)
	for _, m := range recipe.Macros {
		target := targets.MacroTarget(m)
		if target <= 0 {
			continue
		}
		consumed := totals.MacroValue(m)
		if consumed <= target*macroThreshold {
			continue
		}
		if surplus := consumed - target; !found || surplus > largest {
			worst = m
			largest = surplus
			found = true
		}
	}
	return worst, largest, found
}

// metricFunc extracts an ingredient's base contribution for the metric
// being reduced.
type metricFunc func(recipe.Ingredient) float64

func caloriesOf(ing recipe.Ingredient) float64 { return ing.Calories }

func macroOf(m recipe.Macro) metricFunc {
	return func(ing recipe.Ingredient) float64 { return ing.Macro(m) }
}

// reduce shrinks the single ingredient contributing most to the metric.
// Candidates are scalable ingredients still above the base-amount floor.
// Returns false when the top candidate's reduction does not survive
// rounding.
func (o *DayOptimizer) reduce(day *plan.DayPlan, recipes []recipe.Recipe, surplus float64, metric metricFunc) bool {
	type candidate struct {
		mealIdx      int
		ing          recipe.Ingredient
		current      float64
		contribution float64
	}

	var candidates []candidate
	for i, rec := range recipes {
		for _, ing := range rec.Ingredients {
			if !ing.IsScalable || ing.BaseAmount <= 0 || metric(ing) <= 0 {
				continue
			}
			current := plan.EffectiveAmount(ing, day.Meals[i].Overrides)
			if current <= ing.BaseAmount*minBaseShare {
				continue
			}
			candidates = append(candidates, candidate{
				mealIdx:      i,
				ing:          ing,
				current:      current,
				contribution: metric(ing) * current / ing.BaseAmount,
			})
		}
	}

	if len(candidates) == 0 {
		return false
	}

	// Only the largest contributor is considered. When rounding absorbs
	// its reduction the pass is a no-op; lesser contributors never step in.
	best := 0
	for i := range candidates {
		if candidates[i].contribution > candidates[best].contribution {
			best = i
		}
	}
	c := candidates[best]

	perUnit := metric(c.ing) / c.ing.BaseAmount
	reduction := surplus / perUnit
	if limit := c.current * maxPassReduction; reduction > limit {
		reduction = limit
	}
	newAmount := c.current - reduction
	if floor := c.ing.BaseAmount * minBaseShare; newAmount < floor {
		newAmount = floor
	}
	newAmount = plan.RoundAmount(newAmount)
	if newAmount >= c.current {
		return false
	}

	day.Meals[c.mealIdx].SetOverride(plan.IngredientOverride{
		IngredientID: c.ing.IngredientID,
		NewAmount:    newAmount,
		AutoAdjusted: true,
	})
	return true
}

// DayTotals sums the day's nutrition with all overrides applied. recipes
// must parallel day.Meals.
func DayTotals(day plan.DayPlan, recipes []recipe.Recipe) recipe.NutritionInfo {
	var total recipe.NutritionInfo
	for i, rec := range recipes {
		total = total.Add(plan.RecipeNutrition(rec, day.Meals[i].Overrides))
	}
	return total
}
