// Package planner implements the meal plan generation engine: the catalog
// index, recipe selection, batch-cooking reservations, day assembly and
// the iterative day optimizer, driven by the week-level plan service.
package planner

import (
	"sort"

	"github.com/google/uuid"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/recipe"
)

// CatalogIndex is an immutable in-memory snapshot of the recipe catalog,
// bucketed per searchable slot category and calorie-sorted for range
// queries. Built once per generation run so day assembly never goes back
// to storage.
type CatalogIndex struct {
	buckets map[recipe.MealSlot][]recipe.Recipe
}

// BuildIndex organizes the fetched catalog. Recipes requiring excluded
// equipment are dropped entirely; the rest are placed into every bucket
// their slots map to. Sorting is stable so equal-calorie recipes keep
// catalog order, which makes the extended-band tie-break deterministic.
func BuildIndex(recipes []recipe.Recipe, excludedEquipmentIDs []uuid.UUID) *CatalogIndex {
	excluded := make(map[uuid.UUID]bool, len(excludedEquipmentIDs))
	for _, id := range excludedEquipmentIDs {
		excluded[id] = true
	}

	buckets := make(map[recipe.MealSlot][]recipe.Recipe, len(recipe.SearchCategories))
	for _, cat := range recipe.SearchCategories {
		buckets[cat] = nil
	}

	for _, r := range recipes {
		if r.RequiresAnyOf(excluded) {
			continue
		}
		seen := make(map[recipe.MealSlot]bool, len(r.Slots))
		for _, slot := range r.Slots {
			cat := slot.SearchCategory()
			if seen[cat] {
				continue
			}
			seen[cat] = true
			if _, ok := buckets[cat]; ok {
				buckets[cat] = append(buckets[cat], r)
			}
		}
	}

	for cat := range buckets {
		sort.SliceStable(buckets[cat], func(i, j int) bool {
			return buckets[cat][i].Nutrition.Calories < buckets[cat][j].Nutrition.Calories
		})
	}

	return &CatalogIndex{buckets: buckets}
}

// Query returns the bucket's recipes with calories in [minCal, maxCal],
// in calorie order. An empty result is a normal outcome, not an error;
// the selector decides how to proceed.
func (ix *CatalogIndex) Query(slot recipe.MealSlot, minCal, maxCal float64) []recipe.Recipe {
	bucket := ix.buckets[slot.SearchCategory()]
	if len(bucket) == 0 {
		return nil
	}

	// Binary search for the first recipe at or above minCal, then
	// collect linearly while under maxCal.
	start := sort.Search(len(bucket), func(i int) bool {
		return bucket[i].Nutrition.Calories >= minCal
	})

	var result []recipe.Recipe
	for i := start; i < len(bucket); i++ {
		if bucket[i].Nutrition.Calories > maxCal {
			break
		}
		result = append(result, bucket[i])
	}
	return result
}

// BucketSize reports how many recipes serve a slot's search category.
func (ix *CatalogIndex) BucketSize(slot recipe.MealSlot) int {
	return len(ix.buckets[slot.SearchCategory()])
}
