package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/test/testutils"
)

func testDates(n int) []time.Time {
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func TestReserveSpreadsRemainingServings(t *testing.T) {
	soup := testutils.NewRecipeBuilder().
		WithSlots(recipe.SlotLunch).
		WithServings(3).
		AsBatchFriendly().
		Build()
	dates := testDates(7)
	rs := NewReservations()

	rs.Reserve(soup, nil, recipe.SlotLunch, dates, 0)

	// One serving eaten on day 0, two reserved for days 1 and 2
	assert.Equal(t, 2, rs.Len())

	res, ok := rs.Consume(dates[1], recipe.SlotLunch)
	require.True(t, ok)
	assert.Equal(t, soup.ID, res.Recipe.ID)
	assert.Equal(t, 2, res.RemainingServings)

	res, ok = rs.Consume(dates[2], recipe.SlotLunch)
	require.True(t, ok)
	assert.Equal(t, 1, res.RemainingServings)

	assert.Equal(t, 0, rs.Len())
}

func TestReserveSkipsNonBatchRecipes(t *testing.T) {
	rs := NewReservations()
	dates := testDates(7)

	single := testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).Build()
	rs.Reserve(single, nil, recipe.SlotLunch, dates, 0)
	assert.Equal(t, 0, rs.Len())

	// Batch friendly but only one serving leaves nothing to spread
	oneServing := testutils.NewRecipeBuilder().WithSlots(recipe.SlotLunch).AsBatchFriendly().Build()
	rs.Reserve(oneServing, nil, recipe.SlotLunch, dates, 0)
	assert.Equal(t, 0, rs.Len())
}

func TestReserveClipsAtHorizon(t *testing.T) {
	stew := testutils.NewRecipeBuilder().
		WithSlots(recipe.SlotDinner).
		WithServings(4).
		AsBatchFriendly().
		Build()
	dates := testDates(7)
	rs := NewReservations()

	// Selected on the last day: nothing to reserve
	rs.Reserve(stew, nil, recipe.SlotDinner, dates, 6)
	assert.Equal(t, 0, rs.Len())

	// Selected on day 5: only day 6 fits
	rs.Reserve(stew, nil, recipe.SlotDinner, dates, 5)
	assert.Equal(t, 1, rs.Len())
}

func TestReserveFirstWriterWins(t *testing.T) {
	first := testutils.NewRecipeBuilder().
		WithSlots(recipe.SlotLunch).
		WithServings(2).
		AsBatchFriendly().
		Build()
	second := testutils.NewRecipeBuilder().
		WithSlots(recipe.SlotLunch).
		WithServings(2).
		AsBatchFriendly().
		Build()
	dates := testDates(7)
	rs := NewReservations()

	rs.Reserve(first, nil, recipe.SlotLunch, dates, 0)
	rs.Reserve(second, nil, recipe.SlotLunch, dates, 0)

	res, ok := rs.Consume(dates[1], recipe.SlotLunch)
	require.True(t, ok)
	assert.Equal(t, first.ID, res.Recipe.ID)
}

func TestReserveCarriesOverrides(t *testing.T) {
	curry := testutils.NewRecipeBuilder().
		WithSlots(recipe.SlotDinner).
		WithServings(2).
		AsBatchFriendly().
		Build()
	overrides := []plan.IngredientOverride{
		{IngredientID: curry.Ingredients[0].IngredientID, NewAmount: 160, AutoAdjusted: true},
	}
	dates := testDates(7)
	rs := NewReservations()

	rs.Reserve(curry, overrides, recipe.SlotDinner, dates, 0)

	res, ok := rs.Consume(dates[1], recipe.SlotDinner)
	require.True(t, ok)
	assert.Equal(t, overrides, res.Overrides)
}

func TestConsumeMissingReservation(t *testing.T) {
	rs := NewReservations()
	_, ok := rs.Consume(testDates(1)[0], recipe.SlotLunch)
	assert.False(t, ok)
}
