// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// MealPlanService defines the use cases for meal plan generation
// This is the primary port driving adapters call into
type MealPlanService interface {
	// GeneratePlan assembles and optimizes one day plan per requested
	// date. The result is ordered by date and contains exactly one
	// assignment per configured slot.
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) ([]plan.DayPlan, error)

	// GenerateWeeklyPlan generates, persists and caches the standard
	// 7-day horizon starting at startDate.
	GenerateWeeklyPlan(ctx context.Context, cmd GenerateWeeklyPlanCommand) ([]plan.DayPlan, error)

	// GetWeeklyPlan returns the stored 7-day plan starting at startDate,
	// served from cache when warm and rebuilt from the repository
	// otherwise. An empty result means nothing is stored for the range.
	GetWeeklyPlan(ctx context.Context, userID uuid.UUID, startDate time.Time) ([]plan.DayPlan, error)

	// FindMissingDays returns the subset of dates lacking a complete
	// set of slot assignments, enabling idempotent top-up regeneration.
	FindMissingDays(ctx context.Context, userID uuid.UUID, dates []time.Time, planType plan.PlanType, selectedSlots []recipe.MealSlot) ([]time.Time, error)

	// CheckExistingPlan counts assignments already stored in the range.
	CheckExistingPlan(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)

	// CleanupOldPlans deletes assignments dated before the cutoff and
	// returns how many were removed.
	CleanupOldPlans(ctx context.Context, userID uuid.UUID, before time.Time) (int, error)
}

// GeneratePlanCommand contains everything one generation run needs. The
// engine does not compute targets or resolve users; both arrive here
// already validated.
type GeneratePlanCommand struct {
	UserID               uuid.UUID
	Dates                []time.Time
	Targets              plan.NutritionTargets
	PlanType             plan.PlanType
	SelectedSlots        []recipe.MealSlot
	ExcludedEquipmentIDs []uuid.UUID

	// Persist controls whether results are written through the
	// planned-meal repository before being returned.
	Persist bool
}

// GenerateWeeklyPlanCommand requests the standard 7-day horizon.
type GenerateWeeklyPlanCommand struct {
	UserID               uuid.UUID
	StartDate            time.Time
	Targets              plan.NutritionTargets
	PlanType             plan.PlanType
	SelectedSlots        []recipe.MealSlot
	ExcludedEquipmentIDs []uuid.UUID
}
