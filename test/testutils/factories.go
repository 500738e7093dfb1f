// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// RecipeBuilder provides a fluent interface for building test recipes.
// Ingredient nutrition always sums to the recipe totals so scaling math
// in tests behaves like it does on real catalog data.
type RecipeBuilder struct {
	name          string
	slots         []recipe.MealSlot
	calories      float64
	protein       float64
	carbs         float64
	fat           float64
	servings      int
	batchFriendly bool
	ingredients   []recipe.Ingredient
	equipmentIDs  []uuid.UUID
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		name:     faker.Dinner(),
		slots:    []recipe.MealSlot{recipe.SlotLunch},
		calories: 500,
		protein:  35,
		carbs:    20,
		fat:      30,
		servings: 1,
	}
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.name = name
	return rb
}

// WithSlots sets the meal slots the recipe can serve
func (rb *RecipeBuilder) WithSlots(slots ...recipe.MealSlot) *RecipeBuilder {
	rb.slots = slots
	return rb
}

// WithCalories sets the recipe's total calories
func (rb *RecipeBuilder) WithCalories(calories float64) *RecipeBuilder {
	rb.calories = calories
	return rb
}

// WithMacros sets the recipe's macro totals
func (rb *RecipeBuilder) WithMacros(protein, carbs, fat float64) *RecipeBuilder {
	rb.protein = protein
	rb.carbs = carbs
	rb.fat = fat
	return rb
}

// WithServings sets the number of servings one preparation yields
func (rb *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	rb.servings = servings
	return rb
}

// AsBatchFriendly marks the recipe as suitable for batch cooking
func (rb *RecipeBuilder) AsBatchFriendly() *RecipeBuilder {
	rb.batchFriendly = true
	return rb
}

// WithIngredients replaces the generated ingredient breakdown
func (rb *RecipeBuilder) WithIngredients(ingredients ...recipe.Ingredient) *RecipeBuilder {
	rb.ingredients = ingredients
	return rb
}

// WithEquipment sets required equipment IDs
func (rb *RecipeBuilder) WithEquipment(ids ...uuid.UUID) *RecipeBuilder {
	rb.equipmentIDs = ids
	return rb
}

// Build constructs the recipe. If no ingredients were supplied, two are
// generated: a scalable one carrying 70% of the nutrition and a fixed one
// carrying the rest.
func (rb *RecipeBuilder) Build() recipe.Recipe {
	ingredients := rb.ingredients
	if ingredients == nil {
		ingredients = []recipe.Ingredient{
			{
				IngredientID: uuid.New(),
				BaseAmount:   200,
				Unit:         recipe.UnitGram,
				IsScalable:   true,
				Calories:     rb.calories * 0.7,
				Protein:      rb.protein * 0.7,
				Carbs:        rb.carbs * 0.7,
				Fat:          rb.fat * 0.7,
			},
			{
				IngredientID: uuid.New(),
				BaseAmount:   50,
				Unit:         recipe.UnitGram,
				IsScalable:   false,
				Calories:     rb.calories * 0.3,
				Protein:      rb.protein * 0.3,
				Carbs:        rb.carbs * 0.3,
				Fat:          rb.fat * 0.3,
			},
		}
	}

	return recipe.Recipe{
		ID:    uuid.New(),
		Name:  rb.name,
		Slots: rb.slots,
		Nutrition: recipe.NutritionInfo{
			Calories: rb.calories,
			Protein:  rb.protein,
			Carbs:    rb.carbs,
			Fat:      rb.fat,
		},
		BaseServings:         rb.servings,
		IsBatchFriendly:      rb.batchFriendly,
		Ingredients:          ingredients,
		RequiredEquipmentIDs: rb.equipmentIDs,
	}
}

// CatalogFactory builds whole test catalogs with a calorie spread per
// meal slot.
type CatalogFactory struct {
	faker *gofakeit.Faker
}

// NewCatalogFactory creates a catalog factory with a seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{faker: gofakeit.New(seed)}
}

// Catalog builds a catalog: per slot category, one recipe at each of the
// given calorie values.
func (cf *CatalogFactory) Catalog(calorieSteps ...float64) []recipe.Recipe {
	var recipes []recipe.Recipe
	for _, slot := range recipe.SearchCategories {
		for _, cal := range calorieSteps {
			recipes = append(recipes, NewRecipeBuilder().
				WithName(cf.faker.Dinner()).
				WithSlots(slot).
				WithCalories(cal).
				WithMacros(cal*0.3/4, cal*0.15/4, cal*0.55/9).
				Build())
		}
	}
	return recipes
}
