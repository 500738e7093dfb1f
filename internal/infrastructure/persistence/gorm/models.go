// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grekooss/lowcarbplaner-portfolio/internal/domain/plan"
)

// RecipeModel represents the GORM model for catalog recipes
type RecipeModel struct {
	ID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name string    `gorm:"type:varchar(255);not null;index"`

	// Slots this recipe can serve, stored as a JSON string array
	MealTypes StringSlice `gorm:"type:json;not null"`

	// Nutrition for the whole recipe at base amounts. TotalCalories is
	// NOT NULL so the catalog index never sees an unpriced recipe.
	TotalCalories float64 `gorm:"column:total_calories;not null;index"`
	TotalProtein  float64 `gorm:"column:total_protein;default:0"`
	TotalCarbs    float64 `gorm:"column:total_carbs;default:0"`
	TotalFat      float64 `gorm:"column:total_fat;default:0"`

	BaseServings    int  `gorm:"default:1"`
	IsBatchFriendly bool `gorm:"default:false;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID"`
	Equipment   []RecipeEquipmentModel  `gorm:"foreignKey:RecipeID"`
}

// RecipeIngredientModel represents one ingredient line of a recipe with
// its nutrition contribution at the base amount
type RecipeIngredientModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID     uuid.UUID `gorm:"type:char(36);not null;index"`
	IngredientID uuid.UUID `gorm:"type:char(36);not null;index"`

	BaseAmount float64 `gorm:"not null;check:base_amount >= 0"`
	Unit       string  `gorm:"type:varchar(20);default:'g'"`
	IsScalable bool    `gorm:"default:false"`

	Calories float64 `gorm:"default:0"`
	Protein  float64 `gorm:"default:0"`
	Carbs    float64 `gorm:"default:0"`
	Fat      float64 `gorm:"default:0"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// RecipeEquipmentModel links a recipe to kitchen equipment it requires
type RecipeEquipmentModel struct {
	RecipeID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	EquipmentID uuid.UUID `gorm:"type:char(36);primaryKey"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// PlannedMealModel represents one generated meal assignment
type PlannedMealModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_planned_meals_user_date_slot"`
	MealDate string    `gorm:"type:char(10);not null;uniqueIndex:idx_planned_meals_user_date_slot"`
	MealType string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_planned_meals_user_date_slot"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`

	// Engine and user ingredient adjustments, stored as a JSON array
	IngredientOverrides OverrideSlice `gorm:"type:json"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// OverrideSlice custom type for handling ingredient overrides in JSON.
// Round-trips the auto_adjusted flag so engine and manual edits stay
// distinguishable after a reload.
type OverrideSlice []plan.IngredientOverride

// Scan implements the sql.Scanner interface
func (o *OverrideSlice) Scan(value interface{}) error {
	if value == nil {
		*o = OverrideSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("cannot scan %T into OverrideSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (o OverrideSlice) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	return json.Marshal(o)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeIngredientModel
func (i *RecipeIngredientModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PlannedMealModel
func (p *PlannedMealModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (RecipeEquipmentModel) TableName() string {
	return "recipe_equipment"
}

func (PlannedMealModel) TableName() string {
	return "planned_meals"
}
