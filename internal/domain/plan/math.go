package plan

import (
	"math"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// AmountRoundingStep is the granularity ingredient amounts are rounded to.
const AmountRoundingStep = 5.0

// RoundAmount rounds an ingredient amount to the nearest multiple of
// AmountRoundingStep. Idempotent on already-rounded values.
func RoundAmount(amount float64) float64 {
	return math.Round(amount/AmountRoundingStep) * AmountRoundingStep
}

// EffectiveAmount resolves an ingredient's current amount: its base amount
// unless an override replaces it. Kept as a pure function so the optimizer
// can recompute day totals without mutating recipe data.
func EffectiveAmount(ing recipe.Ingredient, overrides []IngredientOverride) float64 {
	if o, ok := FindOverride(overrides, ing.IngredientID); ok {
		return o.NewAmount
	}
	return ing.BaseAmount
}

// FindOverride looks up the override for an ingredient, if any.
func FindOverride(overrides []IngredientOverride, id uuid.UUID) (IngredientOverride, bool) {
	for _, o := range overrides {
		if o.IngredientID == id {
			return o, true
		}
	}
	return IngredientOverride{}, false
}

// RecipeNutrition computes a recipe's nutrition with overrides applied,
// scaling each ingredient's contribution by effective/base amount.
// Calories are rounded to whole kcal and macros to 0.1 g, matching how
// planned meals are displayed and persisted. Recipes without an ingredient
// breakdown fall back to their stored totals.
func RecipeNutrition(r recipe.Recipe, overrides []IngredientOverride) recipe.NutritionInfo {
	if len(r.Ingredients) == 0 {
		return r.Nutrition
	}

	var total recipe.NutritionInfo
	for _, ing := range r.Ingredients {
		if ing.BaseAmount == 0 {
			continue
		}
		scale := EffectiveAmount(ing, overrides) / ing.BaseAmount
		total.Calories += ing.Calories * scale
		total.Protein += ing.Protein * scale
		total.Carbs += ing.Carbs * scale
		total.Fat += ing.Fat * scale
	}

	total.Calories = math.Round(total.Calories)
	total.Protein = math.Round(total.Protein*10) / 10
	total.Carbs = math.Round(total.Carbs*10) / 10
	total.Fat = math.Round(total.Fat*10) / 10
	return total
}

// MacroSurplus is consumed minus target per macronutrient; positive values
// mean the day exceeds its target.
type MacroSurplus map[recipe.Macro]float64

// Surplus computes the day's macro surplus against the targets.
func Surplus(consumed recipe.NutritionInfo, targets NutritionTargets) MacroSurplus {
	s := make(MacroSurplus, len(recipe.Macros))
	for _, m := range recipe.Macros {
		s[m] = consumed.MacroValue(m) - targets.MacroTarget(m)
	}
	return s
}
