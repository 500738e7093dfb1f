// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// RecipeCatalog is the catalog-fetch collaborator. FetchAll returns every
// recipe with computed calories, ingredients and equipment tags in one
// call; the engine queries only its own in-memory index afterwards.
type RecipeCatalog interface {
	FetchAll(ctx context.Context) ([]recipe.Recipe, error)
}

// PlannedMealRepository persists generated assignments and answers the
// existing-assignment lookups used for idempotent regeneration.
type PlannedMealRepository interface {
	// BulkCreate stores all assignments of a generation run.
	BulkCreate(ctx context.Context, userID uuid.UUID, days []plan.DayPlan) error

	// FindAssignedSlots returns, per date key, the set of slots already
	// assigned for the user on the given dates.
	FindAssignedSlots(ctx context.Context, userID uuid.UUID, dates []time.Time) (map[string]map[recipe.MealSlot]bool, error)

	// FindInRange returns the assignments with dates in [start, end],
	// ordered by date and slot.
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]plan.MealAssignment, error)

	// CountInRange counts assignments with dates in [start, end].
	CountInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)

	// DeleteBefore removes assignments dated strictly before the cutoff
	// and reports how many were deleted.
	DeleteBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int, error)
}

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the caching operations the service layer uses
// to keep a user's latest generated plan warm.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IsCacheMiss reports whether err is a cache miss.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
