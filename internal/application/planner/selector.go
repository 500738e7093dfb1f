package planner

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

const (
	// standardTolerance is the band each meal is first searched in
	// (slot target ± 15%).
	standardTolerance = 0.15

	// extendedTolerance widens the search to target ± 50% when the
	// standard band is empty.
	extendedTolerance = 0.5

	// maxIngredientChange caps how far calorie scaling may move a
	// single ingredient (scale factor clamped to [0.8, 1.2]).
	maxIngredientChange = 0.2

	// minScaleDelta below which scaling is skipped as cosmetic.
	minScaleDelta = 0.01

	// scalableShareFloor: scaling is skipped when scalable ingredients
	// carry less than this share of the recipe's calories.
	scalableShareFloor = 0.2

	// targetWindow: a recipe already within ±5% of the meal target is
	// not scaled at all.
	targetWindow = 0.05
)

// CalorieBand is the calorie range a candidate recipe must fall into for
// one slot, with the exact target kept for scaling and tie-breaking.
type CalorieBand struct {
	Min    float64
	Max    float64
	Target float64
}

// BandForSlot computes a slot's standard band from the daily target and
// the slot's configured fraction.
func BandForSlot(targets plan.NutritionTargets, cfg plan.Config, slot recipe.MealSlot) CalorieBand {
	target := targets.Calories * cfg.Fraction(slot)
	return CalorieBand{
		Min:    target * (1 - standardTolerance),
		Max:    target * (1 + standardTolerance),
		Target: target,
	}
}

// Extended returns the repair-path band (target ± 50%).
func (b CalorieBand) Extended() CalorieBand {
	return CalorieBand{
		Min:    b.Target * (1 - extendedTolerance),
		Max:    b.Target * (1 + extendedTolerance),
		Target: b.Target,
	}
}

// Selection is one chosen recipe with the overrides needed to fit it to
// the meal's calorie target, if any.
type Selection struct {
	Recipe    recipe.Recipe
	Overrides []plan.IngredientOverride
}

// Selector picks one recipe per slot. The standard band uses uniform
// random choice to vary weekly plans; the extended band is a deterministic
// repair path so catalog gaps stay reproducible and testable.
type Selector struct {
	index  *CatalogIndex
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSelector creates a selector over an index. The random source is
// injected so tests can seed it.
func NewSelector(index *CatalogIndex, rng *rand.Rand, logger *zap.Logger) *Selector {
	return &Selector{
		index:  index,
		rng:    rng,
		logger: logger.Named("selector"),
	}
}

// Select returns a recipe for the slot and band, or false when not even
// the extended band holds a candidate. Variety (no recipe repeated within
// a day) is best effort: when filtering by used IDs empties the set, the
// unfiltered set is used instead.
func (s *Selector) Select(slot recipe.MealSlot, band CalorieBand, usedIDs map[uuid.UUID]bool) (Selection, bool) {
	standard := s.index.Query(slot, band.Min, band.Max)
	candidates := filterUsed(standard, usedIDs)
	if len(candidates) == 0 {
		candidates = standard
	}

	if len(candidates) > 0 {
		chosen := candidates[s.rng.Intn(len(candidates))]
		return Selection{Recipe: chosen}, true
	}

	// Repair path: widen the band and take the recipe closest to target.
	ext := band.Extended()
	extended := s.index.Query(slot, ext.Min, ext.Max)
	extCandidates := filterUsed(extended, usedIDs)
	if len(extCandidates) == 0 {
		extCandidates = extended
	}
	if len(extCandidates) == 0 {
		return Selection{}, false
	}

	closest := extCandidates[0]
	bestDiff := math.Abs(closest.Nutrition.Calories - band.Target)
	for _, r := range extCandidates[1:] {
		if diff := math.Abs(r.Nutrition.Calories - band.Target); diff < bestDiff {
			closest = r
			bestDiff = diff
		}
	}

	overrides := calorieScalingOverrides(closest, band.Target)
	if len(overrides) > 0 {
		s.logger.Debug("Scaled extended-band recipe toward target",
			zap.String("recipe_id", closest.ID.String()),
			zap.String("slot", string(slot)),
			zap.Float64("target_calories", band.Target),
			zap.Int("overrides", len(overrides)),
		)
	}
	return Selection{Recipe: closest, Overrides: overrides}, true
}

// calorieScalingOverrides scales the recipe's scalable ingredients toward
// the meal's calorie target. Returns nil when scaling is unnecessary,
// cosmetic, or unreliable (scalable ingredients under 20% of calories).
func calorieScalingOverrides(r recipe.Recipe, targetCalories float64) []plan.IngredientOverride {
	current := r.Nutrition.Calories
	if current == 0 {
		return nil
	}
	if current >= targetCalories*(1-targetWindow) && current <= targetCalories*(1+targetWindow) {
		return nil
	}

	scale := targetCalories / current
	scale = math.Max(1-maxIngredientChange, math.Min(1+maxIngredientChange, scale))
	if math.Abs(scale-1) < minScaleDelta {
		return nil
	}

	if r.ScalableCalories() < current*scalableShareFloor {
		return nil
	}

	var overrides []plan.IngredientOverride
	for _, ing := range r.Ingredients {
		if !ing.IsScalable || ing.Calories <= 0 {
			continue
		}
		newAmount := plan.RoundAmount(ing.BaseAmount * scale)
		if newAmount == ing.BaseAmount {
			continue
		}
		overrides = append(overrides, plan.IngredientOverride{
			IngredientID: ing.IngredientID,
			NewAmount:    newAmount,
			AutoAdjusted: true,
		})
	}
	return overrides
}

func filterUsed(recipes []recipe.Recipe, usedIDs map[uuid.UUID]bool) []recipe.Recipe {
	if len(usedIDs) == 0 {
		return recipes
	}
	var out []recipe.Recipe
	for _, r := range recipes {
		if !usedIDs[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
