package plan

import (
	"sort"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// PlanType identifies one of the supported meal-slot layouts.
type PlanType string

const (
	PlanThreeMainTwoSnacks PlanType = "3_main_2_snacks"
	PlanThreeMainOneSnack  PlanType = "3_main_1_snack"
	PlanThreeMain          PlanType = "3_main"
	PlanTwoMain            PlanType = "2_main"
)

// Config is the resolved slot layout for a plan type: the ordered slots of
// a day and each slot's share of the daily calorie target.
type Config struct {
	Slots     []recipe.MealSlot
	Fractions map[recipe.MealSlot]float64
}

// Fraction returns the slot's share of daily calories. Slots without an
// explicit mapping fall back to an even split.
func (c Config) Fraction(slot recipe.MealSlot) float64 {
	if f, ok := c.Fractions[slot]; ok {
		return f
	}
	return 1 / float64(len(c.Slots))
}

var planConfigs = map[PlanType]Config{
	PlanThreeMainTwoSnacks: {
		Slots: []recipe.MealSlot{
			recipe.SlotBreakfast,
			recipe.SlotSnackMorning,
			recipe.SlotLunch,
			recipe.SlotSnackAfternoon,
			recipe.SlotDinner,
		},
		Fractions: map[recipe.MealSlot]float64{
			recipe.SlotBreakfast:      0.25,
			recipe.SlotSnackMorning:   0.10,
			recipe.SlotLunch:          0.30,
			recipe.SlotSnackAfternoon: 0.10,
			recipe.SlotDinner:         0.25,
		},
	},
	PlanThreeMainOneSnack: {
		Slots: []recipe.MealSlot{
			recipe.SlotBreakfast,
			recipe.SlotLunch,
			recipe.SlotSnackAfternoon,
			recipe.SlotDinner,
		},
		Fractions: map[recipe.MealSlot]float64{
			recipe.SlotBreakfast:      0.25,
			recipe.SlotLunch:          0.30,
			recipe.SlotSnackAfternoon: 0.15,
			recipe.SlotDinner:         0.30,
		},
	},
	PlanThreeMain: {
		Slots: []recipe.MealSlot{
			recipe.SlotBreakfast,
			recipe.SlotLunch,
			recipe.SlotDinner,
		},
		Fractions: map[recipe.MealSlot]float64{
			recipe.SlotBreakfast: 0.30,
			recipe.SlotLunch:     0.35,
			recipe.SlotDinner:    0.35,
		},
	},
	PlanTwoMain: {
		// Default; overridden by the user's selected slots in ResolveConfig.
		Slots: []recipe.MealSlot{recipe.SlotLunch, recipe.SlotDinner},
		Fractions: map[recipe.MealSlot]float64{
			recipe.SlotLunch:  0.45,
			recipe.SlotDinner: 0.55,
		},
	},
}

// ResolveConfig maps a plan type to its slot layout. For the two-meal plan
// the user picks which two meals to eat; the earlier slot of the day gets
// 45% of calories and the later one 55%.
func ResolveConfig(planType PlanType, selectedSlots []recipe.MealSlot) (Config, error) {
	if planType == PlanTwoMain && len(selectedSlots) == 2 {
		slots := []recipe.MealSlot{selectedSlots[0], selectedSlots[1]}
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].DayOrder() < slots[j].DayOrder()
		})
		return Config{
			Slots: slots,
			Fractions: map[recipe.MealSlot]float64{
				slots[0]: 0.45,
				slots[1]: 0.55,
			},
		}, nil
	}

	cfg, ok := planConfigs[planType]
	if !ok {
		return Config{}, ErrUnknownPlanType
	}
	return cfg, nil
}
