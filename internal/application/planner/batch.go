package planner

import (
	"time"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// Reservation holds one batch-cooked serving earmarked for a future
// (date, slot). Overrides travel with the recipe so every serving of a
// batch carries the same adjustments.
type Reservation struct {
	Recipe            recipe.Recipe
	Overrides         []plan.IngredientOverride
	RemainingServings int
}

type reservationKey struct {
	date string
	slot recipe.MealSlot
}

// Reservations tracks batch-cooking allocations across the horizon. One
// instance lives per generation run and is threaded through sequential
// day assembly; it is not safe for concurrent use and never needs to be.
type Reservations struct {
	entries map[reservationKey]Reservation
}

// NewReservations creates an empty reservation map.
func NewReservations() *Reservations {
	return &Reservations{entries: make(map[reservationKey]Reservation)}
}

// Reserve spreads the remaining servings of a batch-friendly recipe onto
// the same slot of the following days. Days beyond the horizon are
// skipped, and an existing reservation for a key is never overwritten:
// first writer wins.
func (rs *Reservations) Reserve(rec recipe.Recipe, overrides []plan.IngredientOverride, slot recipe.MealSlot, dates []time.Time, dayIndex int) {
	if !rec.IsBatchFriendly || rec.BaseServings < 2 {
		return
	}

	// One serving is eaten on the selection day itself.
	toAllocate := rec.BaseServings - 1
	for i := 1; i <= toAllocate; i++ {
		future := dayIndex + i
		if future >= len(dates) {
			break
		}
		key := reservationKey{date: plan.DateKey(dates[future]), slot: slot}
		if _, taken := rs.entries[key]; taken {
			continue
		}
		rs.entries[key] = Reservation{
			Recipe:            rec,
			Overrides:         cloneOverrides(overrides),
			RemainingServings: toAllocate - i + 1,
		}
	}
}

// Consume removes and returns the reservation for a (date, slot), so each
// reserved serving is used exactly once.
func (rs *Reservations) Consume(date time.Time, slot recipe.MealSlot) (Reservation, bool) {
	key := reservationKey{date: plan.DateKey(date), slot: slot}
	res, ok := rs.entries[key]
	if !ok {
		return Reservation{}, false
	}
	delete(rs.entries, key)
	return res, true
}

// Len reports how many reservations are outstanding.
func (rs *Reservations) Len() int {
	return len(rs.entries)
}

func cloneOverrides(overrides []plan.IngredientOverride) []plan.IngredientOverride {
	if overrides == nil {
		return nil
	}
	out := make([]plan.IngredientOverride, len(overrides))
	copy(out, overrides)
	return out
}
