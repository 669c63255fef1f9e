package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cookbook struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`

	Members  []*User            `gorm:"many2many:cookbook_members;constraint:OnDelete:CASCADE"`
	Chapters []*CookbookChapter `gorm:"foreignKey:CookbookID;constraint:OnDelete:CASCADE"`
	Recipes  []*CookbookRecipe  `gorm:"foreignKey:CookbookID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (c *Cookbook) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ID)
	return nil
}

type CookbookChapter struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CookbookID uuid.UUID `gorm:"type:uuid;not null;index" json:"cookbook_id"`
	Name       string    `gorm:"not null" json:"name"`
	Position   int       `gorm:"not null" json:"position"`
	Timestamp
}

func (c *CookbookChapter) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ID)
	return nil
}

// CookbookRecipe places a recipe inside a cookbook chapter at a position.
type CookbookRecipe struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CookbookID uuid.UUID  `gorm:"type:uuid;not null;index" json:"cookbook_id"`
	ChapterID  *uuid.UUID `gorm:"type:uuid;index" json:"chapter_id,omitempty"`
	RecipeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Position   int        `gorm:"not null" json:"position"`

	Recipe   *Recipe                   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Chapter  *CookbookChapter          `gorm:"foreignKey:ChapterID;constraint:OnDelete:SET NULL"`
	Feedback []*CookbookRecipeFeedback `gorm:"foreignKey:CookbookRecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (c *CookbookRecipe) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ID)
	return nil
}

type CookbookRecipeFeedback struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CookbookRecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_placement_user" json:"cookbook_recipe_id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_placement_user" json:"user_id"`
	Rating           *float64  `json:"rating"`
	Comment          *string   `gorm:"type:text" json:"comment"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (f *CookbookRecipeFeedback) BeforeCreate(_ *gorm.DB) error {
	newID(&f.ID)
	return nil
}
