// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// ModelToRecipe converts a GORM model with preloaded ingredients and
// equipment into a domain recipe
func ModelToRecipe(model *RecipeModel) recipe.Recipe {
	slots := make([]recipe.MealSlot, len(model.MealTypes))
	for i, s := range model.MealTypes {
		slots[i] = recipe.MealSlot(s)
	}

	ingredients := make([]recipe.Ingredient, len(model.Ingredients))
	for i, ing := range model.Ingredients {
		ingredients[i] = recipe.Ingredient{
			IngredientID: ing.IngredientID,
			BaseAmount:   ing.BaseAmount,
			Unit:         recipe.MeasurementUnit(ing.Unit),
			IsScalable:   ing.IsScalable,
			Calories:     ing.Calories,
			Protein:      ing.Protein,
			Carbs:        ing.Carbs,
			Fat:          ing.Fat,
		}
	}

	equipment := make([]uuid.UUID, len(model.Equipment))
	for i, eq := range model.Equipment {
		equipment[i] = eq.EquipmentID
	}

	return recipe.Recipe{
		ID:    model.ID,
		Name:  model.Name,
		Slots: slots,
		Nutrition: recipe.NutritionInfo{
			Calories: model.TotalCalories,
			Protein:  model.TotalProtein,
			Carbs:    model.TotalCarbs,
			Fat:      model.TotalFat,
		},
		BaseServings:         model.BaseServings,
		IsBatchFriendly:      model.IsBatchFriendly,
		Ingredients:          ingredients,
		RequiredEquipmentIDs: equipment,
	}
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r recipe.Recipe) *RecipeModel {
	mealTypes := make(StringSlice, len(r.Slots))
	for i, s := range r.Slots {
		mealTypes[i] = string(s)
	}

	ingredients := make([]RecipeIngredientModel, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = RecipeIngredientModel{
			RecipeID:     r.ID,
			IngredientID: ing.IngredientID,
			BaseAmount:   ing.BaseAmount,
			Unit:         string(ing.Unit),
			IsScalable:   ing.IsScalable,
			Calories:     ing.Calories,
			Protein:      ing.Protein,
			Carbs:        ing.Carbs,
			Fat:          ing.Fat,
		}
	}

	equipment := make([]RecipeEquipmentModel, len(r.RequiredEquipmentIDs))
	for i, id := range r.RequiredEquipmentIDs {
		equipment[i] = RecipeEquipmentModel{
			RecipeID:    r.ID,
			EquipmentID: id,
		}
	}

	return &RecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		MealTypes:       mealTypes,
		TotalCalories:   r.Nutrition.Calories,
		TotalProtein:    r.Nutrition.Protein,
		TotalCarbs:      r.Nutrition.Carbs,
		TotalFat:        r.Nutrition.Fat,
		BaseServings:    r.BaseServings,
		IsBatchFriendly: r.IsBatchFriendly,
		Ingredients:     ingredients,
		Equipment:       equipment,
	}
}

// AssignmentToModel converts one meal assignment to a planned-meal model
func AssignmentToModel(userID uuid.UUID, a plan.MealAssignment) *PlannedMealModel {
	return &PlannedMealModel{
		UserID:              userID,
		MealDate:            plan.DateKey(a.Date),
		MealType:            string(a.Slot),
		RecipeID:            a.RecipeID,
		IngredientOverrides: OverrideSlice(a.Overrides),
	}
}

// ModelToAssignment converts a planned-meal model back to a meal
// assignment. A malformed stored date is a data error, not a zero time.
func ModelToAssignment(model *PlannedMealModel) (plan.MealAssignment, error) {
	date, err := time.Parse(plan.DateLayout, model.MealDate)
	if err != nil {
		return plan.MealAssignment{}, fmt.Errorf("malformed meal date %q: %w", model.MealDate, err)
	}
	return plan.MealAssignment{
		Date:      date,
		Slot:      recipe.MealSlot(model.MealType),
		RecipeID:  model.RecipeID,
		Overrides: []plan.IngredientOverride(model.IngredientOverrides),
	}, nil
}
