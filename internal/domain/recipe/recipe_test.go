package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite tests the recipe domain model
type RecipeTestSuite struct {
	suite.Suite
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func (s *RecipeTestSuite) validRecipe() Recipe {
	return Recipe{
		ID:           uuid.New(),
		Name:         "Grilled Chicken Salad",
		Slots:        []MealSlot{SlotLunch, SlotDinner},
		Nutrition:    NutritionInfo{Calories: 520, Protein: 45, Carbs: 8, Fat: 32},
		BaseServings: 1,
		Ingredients: []Ingredient{
			{IngredientID: uuid.New(), BaseAmount: 180, Unit: UnitGram, IsScalable: true, Calories: 300},
			{IngredientID: uuid.New(), BaseAmount: 30, Unit: UnitMilliliter, Calories: 220},
		},
	}
}

func (s *RecipeTestSuite) TestValidate() {
	s.Run("valid recipe passes", func() {
		s.NoError(s.validRecipe().Validate())
	})

	s.Run("missing ID fails", func() {
		r := s.validRecipe()
		r.ID = uuid.Nil
		s.ErrorIs(r.Validate(), ErrMissingID)
	})

	s.Run("no slots fails", func() {
		r := s.validRecipe()
		r.Slots = nil
		s.ErrorIs(r.Validate(), ErrNoSlots)
	})

	s.Run("negative calories fails", func() {
		r := s.validRecipe()
		r.Nutrition.Calories = -1
		s.ErrorIs(r.Validate(), ErrNegativeCalories)
	})

	s.Run("zero servings fails", func() {
		r := s.validRecipe()
		r.BaseServings = 0
		s.ErrorIs(r.Validate(), ErrInvalidServings)
	})

	s.Run("negative ingredient amount fails", func() {
		r := s.validRecipe()
		r.Ingredients[0].BaseAmount = -5
		s.ErrorIs(r.Validate(), ErrNegativeAmount)
	})
}

func (s *RecipeTestSuite) TestRequiresAnyOf() {
	blender := uuid.New()
	oven := uuid.New()

	r := s.validRecipe()
	r.RequiredEquipmentIDs = []uuid.UUID{blender}

	s.True(r.RequiresAnyOf(map[uuid.UUID]bool{blender: true}))
	s.False(r.RequiresAnyOf(map[uuid.UUID]bool{oven: true}))
	s.False(r.RequiresAnyOf(nil))
}

func (s *RecipeTestSuite) TestScalableCalories() {
	r := s.validRecipe()
	s.Equal(300.0, r.ScalableCalories())

	r.Ingredients[1].IsScalable = true
	s.Equal(520.0, r.ScalableCalories())
}

func TestSearchCategory(t *testing.T) {
	assert.Equal(t, SlotSnack, SlotSnackMorning.SearchCategory())
	assert.Equal(t, SlotSnack, SlotSnackAfternoon.SearchCategory())
	assert.Equal(t, SlotBreakfast, SlotBreakfast.SearchCategory())
	assert.Equal(t, SlotDinner, SlotDinner.SearchCategory())
}

func TestDayOrder(t *testing.T) {
	order := []MealSlot{SlotBreakfast, SlotSnackMorning, SlotLunch, SlotSnackAfternoon, SlotDinner}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].DayOrder(), order[i].DayOrder())
	}

	// Unknown slots sort last
	assert.Greater(t, MealSlot("brunch").DayOrder(), SlotDinner.DayOrder())
}
