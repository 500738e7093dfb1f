package planner

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/test/testutils"
)

func newTestSelector(recipes []recipe.Recipe, seed int64) *Selector {
	index := BuildIndex(recipes, nil)
	return NewSelector(index, rand.New(rand.NewSource(seed)), zap.NewNop())
}

func TestBandForSlot(t *testing.T) {
	targets := plan.NutritionTargets{Calories: 1800}
	cfg, err := plan.ResolveConfig(plan.PlanThreeMain, nil)
	require.NoError(t, err)

	band := BandForSlot(targets, cfg, recipe.SlotBreakfast)
	assert.InDelta(t, 540.0, band.Target, 1e-9)
	assert.InDelta(t, 459.0, band.Min, 1e-9)
	assert.InDelta(t, 621.0, band.Max, 1e-9)

	ext := band.Extended()
	assert.InDelta(t, 270.0, ext.Min, 1e-9)
	assert.InDelta(t, 810.0, ext.Max, 1e-9)
	assert.InDelta(t, 540.0, ext.Target, 1e-9)
}

func TestSelectStandardBand(t *testing.T) {
	var recipes []recipe.Recipe
	for _, cal := range []float64{520, 560, 600, 640} {
		recipes = append(recipes, testutils.NewRecipeBuilder().
			WithSlots(recipe.SlotDinner).
			WithCalories(cal).
			Build())
	}
	selector := newTestSelector(recipes, 42)
	band := CalorieBand{Min: 510, Max: 690, Target: 600}

	sel, ok := selector.Select(recipe.SlotDinner, band, nil)
	require.True(t, ok)
	assert.GreaterOrEqual(t, sel.Recipe.Nutrition.Calories, band.Min)
	assert.LessOrEqual(t, sel.Recipe.Nutrition.Calories, band.Max)
	assert.Empty(t, sel.Overrides, "standard band picks are not scaled")
}

func TestSelectAvoidsUsedRecipes(t *testing.T) {
	a := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(550).Build()
	b := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(600).Build()
	selector := newTestSelector([]recipe.Recipe{a, b}, 1)
	band := CalorieBand{Min: 500, Max: 700, Target: 600}

	used := map[uuid.UUID]bool{a.ID: true}
	for i := 0; i < 10; i++ {
		sel, ok := selector.Select(recipe.SlotDinner, band, used)
		require.True(t, ok)
		assert.Equal(t, b.ID, sel.Recipe.ID)
	}
}

func TestSelectRepeatsWhenAllUsed(t *testing.T) {
	a := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(550).Build()
	selector := newTestSelector([]recipe.Recipe{a}, 1)
	band := CalorieBand{Min: 500, Max: 700, Target: 600}

	sel, ok := selector.Select(recipe.SlotDinner, band, map[uuid.UUID]bool{a.ID: true})
	require.True(t, ok)
	assert.Equal(t, a.ID, sel.Recipe.ID)
}

func TestSelectExtendedBandPicksClosest(t *testing.T) {
	far := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(350).Build()
	near := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(780).Build()
	selector := newTestSelector([]recipe.Recipe{far, near}, 7)
	band := CalorieBand{Min: 510, Max: 690, Target: 600}

	sel, ok := selector.Select(recipe.SlotDinner, band, nil)
	require.True(t, ok)
	assert.Equal(t, near.ID, sel.Recipe.ID)
}

func TestSelectExtendedBandScalesTowardTarget(t *testing.T) {
	r := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(800).Build()
	selector := newTestSelector([]recipe.Recipe{r}, 7)
	band := CalorieBand{Min: 535, Max: 725, Target: 630}

	sel, ok := selector.Select(recipe.SlotDinner, band, nil)
	require.True(t, ok)
	require.Len(t, sel.Overrides, 1)

	o := sel.Overrides[0]
	assert.True(t, o.AutoAdjusted)

	// Desired scale 630/800 clamps to 0.8, so the 200g scalable
	// ingredient drops to 160g.
	assert.Equal(t, 160.0, o.NewAmount)
	assert.Equal(t, sel.Recipe.Ingredients[0].IngredientID, o.IngredientID)
}

func TestSelectNoCandidateAnywhere(t *testing.T) {
	r := testutils.NewRecipeBuilder().WithSlots(recipe.SlotDinner).WithCalories(2000).Build()
	selector := newTestSelector([]recipe.Recipe{r}, 7)
	band := CalorieBand{Min: 510, Max: 690, Target: 600}

	_, ok := selector.Select(recipe.SlotDinner, band, nil)
	assert.False(t, ok)
}

func TestCalorieScalingOverrides(t *testing.T) {
	t.Run("within target window is not scaled", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithCalories(640).Build()
		assert.Nil(t, calorieScalingOverrides(r, 630))
	})

	t.Run("scale clamps to at most 20 percent change", func(t *testing.T) {
		// Desired scale 400/800 = 0.5 clamps to 0.8
		r := testutils.NewRecipeBuilder().WithCalories(800).Build()
		overrides := calorieScalingOverrides(r, 400)
		require.Len(t, overrides, 1)
		assert.Equal(t, 160.0, overrides[0].NewAmount)
	})

	t.Run("upscaling clamps to 1.2", func(t *testing.T) {
		r := testutils.NewRecipeBuilder().WithCalories(400).Build()
		overrides := calorieScalingOverrides(r, 800)
		require.Len(t, overrides, 1)
		assert.Equal(t, 240.0, overrides[0].NewAmount)
	})

	t.Run("low scalable share skips scaling", func(t *testing.T) {
		scalable := recipe.Ingredient{
			IngredientID: uuid.New(),
			BaseAmount:   50,
			IsScalable:   true,
			Calories:     80,
		}
		fixed := recipe.Ingredient{
			IngredientID: uuid.New(),
			BaseAmount:   300,
			Calories:     720,
		}
		r := testutils.NewRecipeBuilder().
			WithCalories(800).
			WithIngredients(scalable, fixed).
			Build()

		assert.Nil(t, calorieScalingOverrides(r, 600))
	})

	t.Run("amounts that round back to base emit no override", func(t *testing.T) {
		scalable := recipe.Ingredient{
			IngredientID: uuid.New(),
			BaseAmount:   10,
			IsScalable:   true,
			Calories:     800,
		}
		r := testutils.NewRecipeBuilder().
			WithCalories(800).
			WithIngredients(scalable).
			Build()

		// Scale 0.8 moves 10g to 8g, which rounds back to 10g
		assert.Empty(t, calorieScalingOverrides(r, 400))
	})
}
