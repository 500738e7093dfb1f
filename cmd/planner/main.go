// Package main provides the meal plan generator demo against the seeded
// SQLite catalog
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/application/planner"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/infrastructure/container"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/ports/inbound"
)

func main() {
	app := fx.New(
		fx.NopLogger, // Use our own logger instead of Fx's

		// Provide all dependencies
		container.Module,

		// Run the demo generation
		fx.Invoke(runDemo),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatalf("failed to stop: %v", err)
	}
}

// runDemo generates a week of meals for a demo user and logs the daily
// totals so the run is inspectable without a frontend.
func runDemo(service inbound.MealPlanService, logger *zap.Logger) error {
	ctx := context.Background()
	userID := uuid.New()
	start := time.Now().Truncate(24 * time.Hour)

	days, err := service.GenerateWeeklyPlan(ctx, inbound.GenerateWeeklyPlanCommand{
		UserID:    userID,
		StartDate: start,
		Targets: plan.NutritionTargets{
			Calories: 1800,
			Protein:  130,
			Carbs:    80,
			Fat:      110,
		},
		PlanType: plan.PlanThreeMain,
	})
	if err != nil {
		return err
	}

	for _, day := range days {
		logger.Info("Generated day",
			zap.String("date", plan.DateKey(day.Date)),
			zap.Int("meals", len(day.Meals)),
		)
		for _, meal := range day.Meals {
			logger.Info("  meal",
				zap.String("slot", string(meal.Slot)),
				zap.String("recipe_id", meal.RecipeID.String()),
				zap.Int("overrides", len(meal.Overrides)),
			)
		}
	}

	missing, err := service.FindMissingDays(ctx, userID, weekDates(start), plan.PlanThreeMain, nil)
	if err != nil {
		return err
	}
	logger.Info("Plan coverage check", zap.Int("missing_days", len(missing)))

	cached, err := service.GetWeeklyPlan(ctx, userID, start)
	if err != nil {
		return err
	}
	logger.Info("Plan readback", zap.Int("days", len(cached)))

	return nil
}

func weekDates(start time.Time) []time.Time {
	dates := make([]time.Time, planner.WeeklyHorizonDays)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}
