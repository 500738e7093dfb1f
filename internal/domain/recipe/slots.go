package recipe

// MealSlot is a named meal occasion in a day.
type MealSlot string

const (
	SlotBreakfast      MealSlot = "breakfast"
	SlotSnackMorning   MealSlot = "snack_morning"
	SlotLunch          MealSlot = "lunch"
	SlotSnackAfternoon MealSlot = "snack_afternoon"
	SlotDinner         MealSlot = "dinner"

	// SlotSnack is the search category both snack occasions fold into.
	// Recipes are tagged plain "snack"; assignments keep the original
	// morning/afternoon slot.
	SlotSnack MealSlot = "snack"
)

// SearchCategory maps a plan slot to the catalog bucket it is served from.
func (s MealSlot) SearchCategory() MealSlot {
	if s == SlotSnackMorning || s == SlotSnackAfternoon {
		return SlotSnack
	}
	return s
}

// SearchCategories lists the catalog buckets the index maintains.
var SearchCategories = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// dayOrder positions slots within a day, used to order user-selected slots.
var dayOrder = map[MealSlot]int{
	SlotBreakfast:      0,
	SlotSnackMorning:   1,
	SlotLunch:          2,
	SlotSnackAfternoon: 3,
	SlotDinner:         4,
}

// DayOrder returns the slot's position within a day. Unknown slots sort last.
func (s MealSlot) DayOrder() int {
	if pos, ok := dayOrder[s]; ok {
		return pos
	}
	return len(dayOrder)
}

// Valid reports whether s is one of the known plan slots.
func (s MealSlot) Valid() bool {
	_, ok := dayOrder[s]
	return ok || s == SlotSnack
}
