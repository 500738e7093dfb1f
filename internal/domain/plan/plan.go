// Package plan contains the domain model for generated meal plans:
// nutrition targets, plan configurations, day plans and the ingredient
// override bookkeeping the optimizer works on.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// DateLayout is the canonical day format used for reservation and
// assignment keys.
const DateLayout = "2006-01-02"

// DateKey normalizes a timestamp to its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// NutritionTargets holds a user's daily targets. Computed upstream
// (BMR/TDEE is not this engine's concern) and consumed read-only.
type NutritionTargets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// MacroTarget returns the daily target for one macronutrient.
func (t NutritionTargets) MacroTarget(m recipe.Macro) float64 {
	switch m {
	case recipe.MacroProtein:
		return t.Protein
	case recipe.MacroCarbs:
		return t.Carbs
	case recipe.MacroFat:
		return t.Fat
	default:
		return 0
	}
}

// IngredientOverride replaces an ingredient's base amount in one assigned
// meal. AutoAdjusted distinguishes engine-generated overrides from manual
// user edits and must survive round-trips to persistence.
type IngredientOverride struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	NewAmount    float64   `json:"new_amount"`
	AutoAdjusted bool      `json:"auto_adjusted"`
}

// MealAssignment binds one recipe to one (date, slot) pair, with optional
// ingredient overrides. The recipe identity never changes once assigned;
// only overrides are mutated during optimization.
type MealAssignment struct {
	Date      time.Time
	Slot      recipe.MealSlot
	RecipeID  uuid.UUID
	Overrides []IngredientOverride
}

// SetOverride replaces any existing override for the ingredient, so
// repeated reductions supersede rather than stack.
func (a *MealAssignment) SetOverride(o IngredientOverride) {
	for i := range a.Overrides {
		if a.Overrides[i].IngredientID == o.IngredientID {
			a.Overrides[i] = o
			return
		}
	}
	a.Overrides = append(a.Overrides, o)
}

// DayPlan is one generated day: a date plus one assignment per configured
// slot, in slot order.
type DayPlan struct {
	Date  time.Time
	Meals []MealAssignment
}
