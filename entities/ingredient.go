package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a canonical catalog entry. A nil CreatorID marks a
// predefined ingredient shipped with the catalog seed.
type Ingredient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"not null;index" json:"name"`
	Language  string     `gorm:"size:20" json:"language"`
	CreatorID *uuid.UUID `gorm:"type:uuid;index" json:"creator_id,omitempty"`

	Creator      *User                    `gorm:"foreignKey:CreatorID"`
	Translations []*IngredientTranslation `gorm:"foreignKey:IngredientID"`
	Timestamp
}

func (i *Ingredient) BeforeCreate(_ *gorm.DB) error {
	newID(&i.ID)
	return nil
}

type IngredientTranslation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_language" json:"ingredient_id"`
	Language     string    `gorm:"size:20;not null;uniqueIndex:idx_ingredient_language" json:"language"`
	Name         string    `gorm:"not null;index" json:"name"`
	Timestamp
}

func (t *IngredientTranslation) BeforeCreate(_ *gorm.DB) error {
	newID(&t.ID)
	return nil
}
