// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migration
	err = db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.RecipeIngredientModel{},
		&gormModels.RecipeEquipmentModel{},
		&gormModels.PlannedMealModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// seedIngredient builds one ingredient line for the demo catalog.
func seedIngredient(amount float64, unit string, scalable bool, calories, protein, carbs, fat float64) gormModels.RecipeIngredientModel {
	return gormModels.RecipeIngredientModel{
		IngredientID: uuid.New(),
		BaseAmount:   amount,
		Unit:         unit,
		IsScalable:   scalable,
		Calories:     calories,
		Protein:      protein,
		Carbs:        carbs,
		Fat:          fat,
	}
}

// seedRecipe sums the ingredient nutrition into the recipe totals so the
// seeded catalog is internally consistent.
func seedRecipe(name string, mealTypes []string, servings int, batchFriendly bool, ingredients ...gormModels.RecipeIngredientModel) gormModels.RecipeModel {
	var calories, protein, carbs, fat float64
	for _, ing := range ingredients {
		calories += ing.Calories
		protein += ing.Protein
		carbs += ing.Carbs
		fat += ing.Fat
	}
	return gormModels.RecipeModel{
		Name:            name,
		MealTypes:       mealTypes,
		TotalCalories:   calories,
		TotalProtein:    protein,
		TotalCarbs:      carbs,
		TotalFat:        fat,
		BaseServings:    servings,
		IsBatchFriendly: batchFriendly,
		Ingredients:     ingredients,
	}
}

// SeedDatabase populates the database with a demo low-carb catalog. The
// calorie spread per meal type is wide enough that the standard band is
// non-empty for daily targets between roughly 1400 and 2400 kcal.
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var recipeCount int64
	db.Model(&gormModels.RecipeModel{}).Count(&recipeCount)
	if recipeCount > 0 {
		return nil // Already seeded
	}

	demoRecipes := []gormModels.RecipeModel{
		// Breakfasts
		seedRecipe("Scrambled Eggs with Avocado", []string{"breakfast"}, 1, false,
			seedIngredient(3, "piece", false, 215, 18.9, 1.1, 14.3),
			seedIngredient(100, "g", true, 160, 2.0, 8.5, 14.7),
			seedIngredient(10, "g", false, 74, 0.1, 0, 8.1),
		),
		seedRecipe("Greek Yogurt Protein Bowl", []string{"breakfast"}, 1, false,
			seedIngredient(250, "g", true, 145, 25.0, 9.0, 1.2),
			seedIngredient(30, "g", true, 180, 6.1, 5.4, 15.3),
			seedIngredient(50, "g", true, 29, 0.4, 7.3, 0.2),
		),
		seedRecipe("Spinach and Feta Omelette", []string{"breakfast"}, 1, false,
			seedIngredient(3, "piece", false, 215, 18.9, 1.1, 14.3),
			seedIngredient(50, "g", false, 132, 7.1, 2.1, 10.7),
			seedIngredient(60, "g", true, 14, 1.7, 2.2, 0.2),
			seedIngredient(10, "g", false, 74, 0.1, 0, 8.1),
		),
		seedRecipe("Chia Pudding with Berries", []string{"breakfast", "snack"}, 1, false,
			seedIngredient(40, "g", true, 194, 6.6, 16.9, 12.3),
			seedIngredient(200, "ml", true, 46, 0.6, 1.2, 4.6),
			seedIngredient(80, "g", true, 46, 0.6, 11.7, 0.4),
		),

		// Lunches
		seedRecipe("Grilled Chicken Salad", []string{"lunch", "dinner"}, 1, false,
			seedIngredient(180, "g", true, 297, 55.8, 0, 6.3),
			seedIngredient(120, "g", true, 20, 1.6, 3.5, 0.2),
			seedIngredient(30, "ml", false, 265, 0, 0, 30.0),
			seedIngredient(40, "g", false, 33, 0.3, 1.8, 2.9),
		),
		seedRecipe("Zucchini Noodle Bolognese", []string{"lunch", "dinner"}, 3, true,
			seedIngredient(400, "g", true, 1000, 77.2, 0, 80.0),
			seedIngredient(600, "g", true, 102, 7.3, 18.6, 1.9),
			seedIngredient(400, "g", true, 72, 3.5, 15.6, 0.8),
			seedIngredient(30, "ml", false, 265, 0, 0, 30.0),
		),
		seedRecipe("Tuna Stuffed Peppers", []string{"lunch"}, 2, true,
			seedIngredient(240, "g", true, 265, 58.3, 0, 2.2),
			seedIngredient(300, "g", true, 93, 3.0, 18.0, 0.9),
			seedIngredient(60, "g", false, 402, 1.2, 0.4, 44.7),
		),
		seedRecipe("Cauliflower Fried Rice with Shrimp", []string{"lunch", "dinner"}, 1, false,
			seedIngredient(200, "g", true, 198, 47.6, 0.2, 0.6),
			seedIngredient(300, "g", true, 75, 5.8, 15.0, 0.8),
			seedIngredient(2, "piece", false, 143, 12.6, 0.7, 9.5),
			seedIngredient(15, "ml", false, 133, 0, 0, 15.0),
		),

		// Dinners
		seedRecipe("Baked Salmon with Broccoli", []string{"dinner"}, 1, false,
			seedIngredient(180, "g", true, 374, 37.1, 0, 24.3),
			seedIngredient(250, "g", true, 85, 7.0, 16.5, 0.9),
			seedIngredient(15, "ml", false, 133, 0, 0, 15.0),
		),
		seedRecipe("Creamy Chicken Curry", []string{"dinner"}, 3, true,
			seedIngredient(500, "g", true, 825, 155.0, 0, 17.5),
			seedIngredient(400, "ml", true, 920, 9.2, 12.0, 96.0),
			seedIngredient(300, "g", true, 75, 5.8, 15.0, 0.8),
		),
		seedRecipe("Beef Steak with Asparagus", []string{"dinner"}, 1, false,
			seedIngredient(200, "g", true, 434, 51.8, 0, 24.6),
			seedIngredient(200, "g", true, 40, 4.4, 7.8, 0.2),
			seedIngredient(15, "g", false, 111, 0.1, 0, 12.2),
		),
		seedRecipe("Stuffed Portobello Mushrooms", []string{"dinner", "lunch"}, 1, false,
			seedIngredient(200, "g", true, 44, 4.2, 7.8, 0.7),
			seedIngredient(100, "g", false, 264, 14.2, 4.1, 21.3),
			seedIngredient(50, "g", true, 12, 1.4, 1.8, 0.2),
		),

		// Snacks
		seedRecipe("Almonds and Cheese Cubes", []string{"snack"}, 1, false,
			seedIngredient(25, "g", true, 145, 5.3, 5.4, 12.5),
			seedIngredient(30, "g", true, 121, 7.5, 0.4, 10.0),
		),
		seedRecipe("Celery with Peanut Butter", []string{"snack"}, 1, false,
			seedIngredient(100, "g", true, 14, 0.7, 3.0, 0.2),
			seedIngredient(30, "g", true, 176, 7.5, 6.0, 15.0),
		),
		seedRecipe("Boiled Eggs with Mayo", []string{"snack"}, 1, false,
			seedIngredient(2, "piece", false, 143, 12.6, 0.7, 9.5),
			seedIngredient(15, "g", true, 101, 0.1, 0.1, 11.2),
		),
		seedRecipe("Cucumber Cream Cheese Bites", []string{"snack"}, 1, false,
			seedIngredient(150, "g", true, 23, 1.0, 5.4, 0.2),
			seedIngredient(40, "g", true, 137, 2.4, 1.6, 13.6),
		),
	}

	for i := range demoRecipes {
		if err := db.Create(&demoRecipes[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo recipe: %w", err)
		}
	}

	return nil
}
