package planner

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/pkg/errors"
)

// DayAssembler fills one day's configured slots, preferring outstanding
// batch reservations over fresh selection so batch-cooked servings are
// always eaten before anything new is planned for that slot.
type DayAssembler struct {
	selector *Selector
	logger   *zap.Logger
}

// NewDayAssembler creates an assembler over a selector.
func NewDayAssembler(selector *Selector, logger *zap.Logger) *DayAssembler {
	return &DayAssembler{
		selector: selector,
		logger:   logger.Named("assembler"),
	}
}

// AssembleDay builds the meal assignments for dates[dayIndex] in slot
// order. It consumes matching reservations first and places new batch
// reservations for every fresh batch-friendly pick. The returned recipe
// slice parallels the day's meals so the optimizer can recompute totals
// without catalog lookups.
//
// A slot no recipe can serve, even in the extended band, fails the whole
// day with a catalog gap error.
func (a *DayAssembler) AssembleDay(
	dates []time.Time,
	dayIndex int,
	targets plan.NutritionTargets,
	cfg plan.Config,
	reservations *Reservations,
) (plan.DayPlan, []recipe.Recipe, error) {
	date := dates[dayIndex]
	day := plan.DayPlan{Date: date}
	recipes := make([]recipe.Recipe, 0, len(cfg.Slots))
	usedIDs := make(map[uuid.UUID]bool, len(cfg.Slots))

	for _, slot := range cfg.Slots {
		if res, ok := reservations.Consume(date, slot); ok {
			day.Meals = append(day.Meals, plan.MealAssignment{
				Date:      date,
				Slot:      slot,
				RecipeID:  res.Recipe.ID,
				Overrides: cloneOverrides(res.Overrides),
			})
			recipes = append(recipes, res.Recipe)
			usedIDs[res.Recipe.ID] = true
			a.logger.Debug("Consumed batch reservation",
				zap.String("date", plan.DateKey(date)),
				zap.String("slot", string(slot)),
				zap.String("recipe_id", res.Recipe.ID.String()),
			)
			continue
		}

		band := BandForSlot(targets, cfg, slot)
		sel, ok := a.selector.Select(slot, band, usedIDs)
		if !ok {
			ext := band.Extended()
			return plan.DayPlan{}, nil, errors.NewCatalogGapError(
				string(slot), plan.DateKey(date), ext.Min, ext.Max)
		}

		day.Meals = append(day.Meals, plan.MealAssignment{
			Date:      date,
			Slot:      slot,
			RecipeID:  sel.Recipe.ID,
			Overrides: sel.Overrides,
		})
		recipes = append(recipes, sel.Recipe)
		usedIDs[sel.Recipe.ID] = true

		reservations.Reserve(sel.Recipe, sel.Overrides, slot, dates, dayIndex)
	}

	return day, recipes, nil
}
