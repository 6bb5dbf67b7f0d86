// Package gorm provides GORM model definitions and repository
// implementations for the engine's storage.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringSlice stores a string slice as a JSON column
type StringSlice []string

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
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

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// CanonicalItemModel is the GORM model for vocabulary items
type CanonicalItemModel struct {
	ID        uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name      string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Category  string      `gorm:"type:varchar(100);index"`
	Aliases   StringSlice `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name
func (CanonicalItemModel) TableName() string { return "canonical_items" }

// TemplateRecipeModel is the GORM model for shared catalog recipes
type TemplateRecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time

	Ingredients []RecipeIngredientModel `gorm:"foreignKey:TemplateRecipeID"`
}

// TableName returns the table name
func (TemplateRecipeModel) TableName() string { return "template_recipes" }

// SavedRecipeModel is the GORM model for household-owned recipes
type SavedRecipeModel struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	HouseholdID uuid.UUID  `gorm:"type:char(36);index;not null"`
	TemplateID  *uuid.UUID `gorm:"type:char(36);index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	ImageURL    string     `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Ingredients []RecipeIngredientModel `gorm:"foreignKey:SavedRecipeID"`
}

// TableName returns the table name
func (SavedRecipeModel) TableName() string { return "saved_recipes" }

// RecipeIngredientModel is one ingredient line. Exactly one of
// SavedRecipeID and TemplateRecipeID is set, depending on the owner.
// RawName is the user's text and is never rewritten; the canonical
// link and classification flags sit next to it.
type RecipeIngredientModel struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	SavedRecipeID    *uuid.UUID `gorm:"type:char(36);index"`
	TemplateRecipeID *uuid.UUID `gorm:"type:char(36);index"`
	RawName          string     `gorm:"type:varchar(512);not null"`
	NormalizedName   string     `gorm:"type:varchar(255);index"`
	CanonicalItemID  *uuid.UUID `gorm:"type:char(36);index"`
	Amount           float64
	Unit             string `gorm:"type:varchar(50)"`
	IsCritical       bool   `gorm:"default:false"`
	IsStaple         bool   `gorm:"default:false"`
	CriticalOverride *bool
	StapleOverride   *bool
	IsOptional       bool   `gorm:"default:false"`
	GroupName        string `gorm:"type:varchar(100)"`
	SortOrder        int    `gorm:"default:0"`
}

// TableName returns the table name
func (RecipeIngredientModel) TableName() string { return "recipe_ingredients" }

// PantryEntryModel is the GORM model for pantry entries
type PantryEntryModel struct {
	ID              uuid.UUID  `gorm:"type:char(36);primaryKey"`
	HouseholdID     uuid.UUID  `gorm:"type:char(36);index:idx_pantry_household;not null"`
	RawName         string     `gorm:"type:varchar(512);not null"`
	NormalizedName  string     `gorm:"type:varchar(255)"`
	CanonicalItemID *uuid.UUID `gorm:"type:char(36);index"`
	Quantity        float64
	Unit            string `gorm:"type:varchar(50)"`
	Status          string `gorm:"type:varchar(20);index:idx_pantry_household;default:'active'"`
	Location        string `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name
func (PantryEntryModel) TableName() string { return "pantry_entries" }

// SubstitutionRuleModel is the GORM model for curated substitution
// rules. ItemAID/ItemBID hold the curator's direction; PairKey holds
// the order-independent pair identity, so its unique index rejects a
// reversed duplicate as well.
type SubstitutionRuleModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	ItemAID       uuid.UUID `gorm:"type:char(36);index;not null"`
	ItemBID       uuid.UUID `gorm:"type:char(36);index;not null"`
	PairKey       string    `gorm:"type:varchar(80);uniqueIndex:idx_sub_pair;not null"`
	Rationale     string    `gorm:"type:text"`
	Ratio         float64   `gorm:"not null"`
	Category      string    `gorm:"type:varchar(100)"`
	Bidirectional bool      `gorm:"default:true"`
	CreatedAt     time.Time
}

// TableName returns the table name
func (SubstitutionRuleModel) TableName() string { return "substitution_rules" }

// OOVRecordModel is one appended normalization miss. Rows are never
// updated or deleted by the application.
type OOVRecordModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	RawText string    `gorm:"type:varchar(512);index;not null"`
	SeenAt  time.Time `gorm:"index;not null"`
}

// TableName returns the table name
func (OOVRecordModel) TableName() string { return "oov_records" }

// AllModels lists every model for migration
func AllModels() []interface{} {
	return []interface{}{
		&CanonicalItemModel{},
		&TemplateRecipeModel{},
		&SavedRecipeModel{},
		&RecipeIngredientModel{},
		&PantryEntryModel{},
		&SubstitutionRuleModel{},
		&OOVRecordModel{},
	}
}
