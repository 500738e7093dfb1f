// Package recipe contains the core domain model for the recipe catalog.
// Recipes are loaded once per generation run and treated as an immutable
// snapshot by the planning engine.
package recipe

import (
	"github.com/google/uuid"
)

// Recipe represents one catalog entry with its full ingredient breakdown.
type Recipe struct {
	ID   uuid.UUID
	Name string

	// Slots this recipe can be assigned to (a recipe may serve
	// several meal occasions, e.g. both lunch and dinner).
	Slots []MealSlot

	// Nutrition for the whole recipe at scale factor 1.0.
	Nutrition NutritionInfo

	// BaseServings is the number of servings one preparation yields.
	BaseServings int

	// IsBatchFriendly marks recipes suitable for cooking once and
	// eating across BaseServings consecutive days.
	IsBatchFriendly bool

	Ingredients []Ingredient

	// RequiredEquipmentIDs lists kitchen equipment the recipe depends on.
	// Recipes requiring equipment the user excluded are filtered out of
	// the catalog index.
	RequiredEquipmentIDs []uuid.UUID
}

// Validate checks the catalog invariants the engine relies on.
func (r Recipe) Validate() error {
	if r.ID == uuid.Nil {
		return ErrMissingID
	}
	if len(r.Slots) == 0 {
		return ErrNoSlots
	}
	if r.Nutrition.Calories < 0 {
		return ErrNegativeCalories
	}
	if r.BaseServings < 1 {
		return ErrInvalidServings
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RequiresAnyOf reports whether the recipe needs at least one piece of
// equipment from the given set.
func (r Recipe) RequiresAnyOf(excluded map[uuid.UUID]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, id := range r.RequiredEquipmentIDs {
		if excluded[id] {
			return true
		}
	}
	return false
}

// ScalableCalories returns the summed calorie contribution of scalable
// ingredients that actually carry calories.
func (r Recipe) ScalableCalories() float64 {
	var total float64
	for _, ing := range r.Ingredients {
		if ing.IsScalable && ing.Calories > 0 {
			total += ing.Calories
		}
	}
	return total
}

// Ingredient is one line of a recipe with its per-ingredient nutrition
// contribution, consistent with the recipe total at scale factor 1.0.
type Ingredient struct {
	IngredientID uuid.UUID
	BaseAmount   float64
	Unit         MeasurementUnit
	IsScalable   bool

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Validate checks ingredient-level invariants.
func (i Ingredient) Validate() error {
	if i.IngredientID == uuid.Nil {
		return ErrMissingID
	}
	if i.BaseAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Macro returns the ingredient's contribution for one macronutrient.
func (i Ingredient) Macro(m Macro) float64 {
	switch m {
	case MacroProtein:
		return i.Protein
	case MacroCarbs:
		return i.Carbs
	case MacroFat:
		return i.Fat
	default:
		return 0
	}
}

// NutritionInfo carries calories plus the three tracked macronutrients.
// Calories in kcal, macros in grams.
type NutritionInfo struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Add returns the component-wise sum of two nutrition values.
func (n NutritionInfo) Add(o NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// MacroValue returns the value of one macronutrient.
func (n NutritionInfo) MacroValue(m Macro) float64 {
	switch m {
	case MacroProtein:
		return n.Protein
	case MacroCarbs:
		return n.Carbs
	case MacroFat:
		return n.Fat
	default:
		return 0
	}
}

// Macro identifies one of the tracked macronutrients.
type Macro string

const (
	MacroProtein Macro = "protein"
	MacroCarbs   Macro = "carbs"
	MacroFat     Macro = "fat"
)

// Macros lists all tracked macronutrients in a stable order.
var Macros = []Macro{MacroProtein, MacroCarbs, MacroFat}

// MeasurementUnit represents units of measurement for ingredient amounts.
type MeasurementUnit string

const (
	UnitGram       MeasurementUnit = "g"
	UnitMilliliter MeasurementUnit = "ml"
	UnitPiece      MeasurementUnit = "piece"
	UnitTeaspoon   MeasurementUnit = "tsp"
	UnitTablespoon MeasurementUnit = "tbsp"
)
