package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"Recipe-Box-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, categories []string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipesByOwner(ctx context.Context, ownerID string) ([]*entities.Recipe, error)
		GetRecipesSharedWith(ctx context.Context, userID string) ([]*entities.Recipe, error)
		IsSharedWith(ctx context.Context, recipeID string, userID string) (bool, error)
		ShareRecipe(ctx context.Context, recipeID string, userID string) (bool, error)
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		MarkAsCooked(ctx context.Context, recipe *entities.Recipe, at time.Time) error
		IsFileReferenced(ctx context.Context, link string, excludeRecipeID string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe inserts the recipe, its ingredient lines and category links in
// one transaction. Categories are matched case-insensitively and created on
// first use.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, categories []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		linked, err := findOrCreateCategories(tx, categories)
		if err != nil {
			return err
		}
		recipe.Categories = linked

		return tx.Create(recipe).Error
	})
}

func findOrCreateCategories(tx *gorm.DB, names []string) ([]*entities.Category, error) {
	var categories []*entities.Category
	seen := map[string]bool{}

	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		var category entities.Category
		err := tx.Where("LOWER(name) = ?", key).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = entities.Category{Name: name}
			err = tx.Create(&category).Error
		}
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *recipeRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Translation").
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") })
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetails(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByOwner(ctx context.Context, ownerID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.withDetails(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetRecipesSharedWith(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.withDetails(ctx).
		Joins("JOIN shared_recipes ON shared_recipes.recipe_id = recipes.id").
		Where("shared_recipes.user_id = ?", userID).
		Order("shared_recipes.created_at asc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) IsSharedWith(ctx context.Context, recipeID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.SharedRecipe{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	return count > 0, err
}

// ShareRecipe records the share and reports whether it is new. Sharing the
// same recipe with the same user twice is a no-op.
func (r *recipeRepository) ShareRecipe(ctx context.Context, recipeID string, userID string) (bool, error) {
	share, err := newSharedRecipe(recipeID, userID)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(share)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func newSharedRecipe(recipeID string, userID string) (*entities.SharedRecipe, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	return &entities.SharedRecipe{RecipeID: recipeUUID, UserID: userUUID}, nil
}

// DeleteRecipe removes the recipe. Ingredient lines, shares and cookbook
// placements go with it through ON DELETE CASCADE.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, "id = ?", recipe.ID).Error
	})
}

func (r *recipeRepository) MarkAsCooked(ctx context.Context, recipe *entities.Recipe, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entities.Recipe{ID: recipe.ID}).Update("last_cooked_at", at).Error
}

// IsFileReferenced reports whether any recipe other than excludeRecipeID
// still points at link, as thumbnail or in its image list.
func (r *recipeRepository) IsFileReferenced(ctx context.Context, link string, excludeRecipeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id <> ?", excludeRecipeID).
		Where("thumbnail_url = ? OR CAST(image_urls AS TEXT) LIKE ?", link, "%\""+link+"\"%").
		Count(&count).Error
	return count > 0, err
}
