package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/outbound"
)

// PlannedMealRepository implements the planned meal repository interface
// using GORM
type PlannedMealRepository struct {
	db *gorm.DB
}

// NewPlannedMealRepository creates a new planned meal repository
func NewPlannedMealRepository(db *gorm.DB) outbound.PlannedMealRepository {
	return &PlannedMealRepository{db: db}
}

// BulkCreate stores all assignments of a generation run in one
// transaction, so a failed write never leaves a partial plan behind.
func (r *PlannedMealRepository) BulkCreate(ctx context.Context, userID uuid.UUID, days []plan.DayPlan) error {
	var models []*PlannedMealModel
	for _, day := range days {
		for _, meal := range day.Meals {
			models = append(models, AssignmentToModel(userID, meal))
		}
	}
	if len(models) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(models).Error
	})
}

// FindAssignedSlots returns, per date key, the slots already assigned for
// the user on the given dates.
func (r *PlannedMealRepository) FindAssignedSlots(ctx context.Context, userID uuid.UUID, dates []time.Time) (map[string]map[recipe.MealSlot]bool, error) {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = plan.DateKey(d)
	}

	var models []PlannedMealModel
	result := r.db.WithContext(ctx).
		Select("meal_date", "meal_type").
		Where("user_id = ? AND meal_date IN ?", userID, keys).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	assigned := make(map[string]map[recipe.MealSlot]bool)
	for _, m := range models {
		if assigned[m.MealDate] == nil {
			assigned[m.MealDate] = make(map[recipe.MealSlot]bool)
		}
		assigned[m.MealDate][recipe.MealSlot(m.MealType)] = true
	}
	return assigned, nil
}

// FindInRange returns the assignments with dates in [start, end],
// ordered by date then meal type.
func (r *PlannedMealRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]plan.MealAssignment, error) {
	var models []PlannedMealModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_date >= ? AND meal_date <= ?",
			userID, plan.DateKey(start), plan.DateKey(end)).
		Order("meal_date ASC, meal_type ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	assignments := make([]plan.MealAssignment, 0, len(models))
	for i := range models {
		assignment, err := ModelToAssignment(&models[i])
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// CountInRange counts assignments with dates in [start, end].
func (r *PlannedMealRepository) CountInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&PlannedMealModel{}).
		Where("user_id = ? AND meal_date >= ? AND meal_date <= ?",
			userID, plan.DateKey(start), plan.DateKey(end)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// DeleteBefore removes assignments dated strictly before the cutoff.
func (r *PlannedMealRepository) DeleteBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND meal_date < ?", userID, plan.DateKey(cutoff)).
		Delete(&PlannedMealModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
