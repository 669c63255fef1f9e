package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ServingsUnitNumber     = "NUMBER"
	ServingsUnitSpringform = "SPRINGFORM"
	ServingsUnitBakingTray = "BAKING_TRAY"
)

type Recipe struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"owner_id"`
	OriginalID       *uuid.UUID                  `gorm:"type:uuid;index" json:"original_id,omitempty"`
	Title            string                      `gorm:"not null;index" json:"title"`
	Instructions     string                      `gorm:"type:text" json:"instructions"`
	Servings         Servings                    `json:"servings"`
	ServingsUnit     *string                     `gorm:"size:20" json:"servings_unit"`
	PrepTime         *int                        `json:"prep_time"`
	CookTime         *int                        `json:"cook_time"`
	RestTime         *int                        `json:"rest_time"`
	TotalTime        int                         `json:"total_time"`
	ThumbnailURL     string                      `json:"thumbnail_url,omitempty"`
	ImageURLs        datatypes.JSONSlice[string] `json:"image_urls"`
	Source           string                      `json:"source,omitempty"`
	SpecialEquipment datatypes.JSONSlice[string] `json:"special_equipment"`
	LastCookedAt     *time.Time                  `json:"last_cooked_at,omitempty"`

	Owner       *User               `gorm:"foreignKey:OwnerID"`
	Original    *Recipe             `gorm:"foreignKey:OriginalID;constraint:OnDelete:SET NULL"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Categories  []*Category         `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	newID(&r.ID)
	return nil
}

// BeforeSave keeps total_time in step with the partial times on every write.
func (r *Recipe) BeforeSave(_ *gorm.DB) error {
	r.TotalTime = TotalTime(r.PrepTime, r.CookTime, r.RestTime)
	return nil
}

// TotalTime sums the given durations in minutes, treating nil as zero.
func TotalTime(parts ...*int) int {
	total := 0
	for _, p := range parts {
		if p != nil {
			total += *p
		}
	}
	return total
}

// RecipeIngredient is one ingredient line of a recipe. Quantity and unit
// belong to this use of the ingredient, not to the ingredient itself.
type RecipeIngredient struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	TranslationID *uuid.UUID `gorm:"type:uuid;index" json:"translation_id,omitempty"`
	Position      int        `json:"position"`
	Quantity      *float64   `json:"quantity"`
	Unit          *string    `json:"unit"`

	Ingredient  *Ingredient            `gorm:"foreignKey:IngredientID"`
	Translation *IngredientTranslation `gorm:"foreignKey:TranslationID"`
	Timestamp
}

func (ri *RecipeIngredient) BeforeCreate(_ *gorm.DB) error {
	newID(&ri.ID)
	return nil
}

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
	Timestamp
}

func (c *Category) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ID)
	return nil
}

type SharedRecipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shared_recipe_user" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shared_recipe_user" json:"user_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (s *SharedRecipe) BeforeCreate(_ *gorm.DB) error {
	newID(&s.ID)
	return nil
}
