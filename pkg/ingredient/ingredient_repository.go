package ingredient

import (
	"context"
	"errors"
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		FindByCanonicalName(ctx context.Context, name string) (*entities.Ingredient, error)
		FindTranslationByName(ctx context.Context, name string, language string) (*entities.IngredientTranslation, error)
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientsForUser(ctx context.Context, userID string) ([]*entities.Ingredient, error)
		GetPredefinedIngredient(ctx context.Context, name string, language string) (*entities.Ingredient, error)
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		CreateTranslation(ctx context.Context, translation *entities.IngredientTranslation) error
		GetTranslation(ctx context.Context, ingredientID string, translationID string) (*entities.IngredientTranslation, error)
		DeleteIngredient(ctx context.Context, id string) error
		DeleteTranslation(ctx context.Context, id string) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// normalize is the match key for names and languages.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindByCanonicalName returns the oldest ingredient whose canonical name
// matches, ties broken by id.
func (r *ingredientRepository) FindByCanonicalName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = ?", normalize(name)).
		Order("created_at asc").
		Order("id asc").
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindTranslationByName matches translation names. An empty language matches
// any language.
func (r *ingredientRepository) FindTranslationByName(ctx context.Context, name string, language string) (*entities.IngredientTranslation, error) {
	query := r.db.WithContext(ctx).Where("LOWER(TRIM(name)) = ?", normalize(name))
	if language != "" {
		query = query.Where("LOWER(language) = ?", normalize(language))
	}

	var translation entities.IngredientTranslation
	err := query.
		Order("created_at asc").
		Order("id asc").
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.WithContext(ctx).
		Preload("Translations", func(db *gorm.DB) *gorm.DB { return db.Order("language asc") }).
		Where("id = ?", id).
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetIngredientsForUser lists the predefined catalog plus the user's own
// ingredients.
func (r *ingredientRepository) GetIngredientsForUser(ctx context.Context, userID string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	err := r.db.WithContext(ctx).
		Preload("Translations", func(db *gorm.DB) *gorm.DB { return db.Order("language asc") }).
		Where("creator_id IS NULL OR creator_id = ?", userID).
		Order("LOWER(name) asc").
		Order("created_at asc").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetPredefinedIngredient(ctx context.Context, name string, language string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.WithContext(ctx).
		Preload("Translations").
		Where("creator_id IS NULL").
		Where("LOWER(TRIM(name)) = ? AND LOWER(language) = ?", normalize(name), normalize(language)).
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) CreateTranslation(ctx context.Context, translation *entities.IngredientTranslation) error {
	return r.db.WithContext(ctx).Create(translation).Error
}

func (r *ingredientRepository) GetTranslation(ctx context.Context, ingredientID string, translationID string) (*entities.IngredientTranslation, error) {
	var translation entities.IngredientTranslation
	err := r.db.WithContext(ctx).
		Where("id = ? AND ingredient_id = ?", translationID, ingredientID).
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

// DeleteIngredient removes the ingredient and its translations unless a
// recipe still references it.
func (r *ingredientRepository) DeleteIngredient(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var uses int64
		if err := tx.Model(&entities.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&uses).Error; err != nil {
			return err
		}
		if uses > 0 {
			return domain.ErrIngredientInUse
		}

		if err := tx.Where("ingredient_id = ?", id).Delete(&entities.IngredientTranslation{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Ingredient{}).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrIngredientInUse
	}
	return err
}

// DeleteTranslation removes a translation unless a recipe line was written
// through it.
func (r *ingredientRepository) DeleteTranslation(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var uses int64
		if err := tx.Model(&entities.RecipeIngredient{}).Where("translation_id = ?", id).Count(&uses).Error; err != nil {
			return err
		}
		if uses > 0 {
			return domain.ErrTranslationInUse
		}
		return tx.Where("id = ?", id).Delete(&entities.IngredientTranslation{}).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrTranslationInUse
	}
	return err
}
