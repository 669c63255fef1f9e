package domain

var (
	MessageSuccessGetIngredients       = "success get ingredients"
	MessageSuccessCreateIngredient     = "ingredient created successfully"
	MessageSuccessAddTranslation       = "translation added successfully"
	MessageSuccessDeleteIngredient     = "ingredient deleted successfully"
	MessageSuccessDeleteTranslation    = "translation deleted successfully"
	MessageFailedGetIngredients        = "failed to get ingredients"
	MessageFailedCreateIngredient      = "failed to create ingredient"
	MessageFailedAddTranslation        = "failed to add translation"
	MessageFailedDeleteIngredient      = "failed to delete ingredient"
	MessageFailedDeleteTranslation     = "failed to delete translation"
	MessageFailedSeedIngredientCatalog = "failed to seed ingredient catalog"

	ErrIngredientNotFound     = NewError(ErrNotFound, "ingredient not found")
	ErrTranslationNotFound    = NewError(ErrNotFound, "translation not found")
	ErrTranslationExists      = NewError(ErrConflict, "translation for this language already exists")
	ErrIngredientInUse        = NewError(ErrConflict, "ingredient is used by at least one recipe")
	ErrTranslationInUse       = NewError(ErrConflict, "translation is used by at least one recipe")
	ErrIngredientNotDeletable = NewError(ErrForbidden, "only the creator can delete this ingredient")
	ErrIngredientNameRequired = NewError(ErrValidation, "ingredient name is required")
)

type (
	CreateIngredientRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		Language string `json:"language" validate:"required,max=20"`
	}

	AddTranslationRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		Language string `json:"language" validate:"required,max=20"`
	}

	TranslationResponse struct {
		ID           string `json:"id"`
		IngredientID string `json:"ingredient_id"`
		Language     string `json:"language"`
		Name         string `json:"name"`
	}

	IngredientResponse struct {
		ID           string                `json:"id"`
		Name         string                `json:"name"`
		Language     string                `json:"language"`
		CreatorID    string                `json:"creator_id,omitempty"`
		IsPredefined bool                  `json:"is_predefined"`
		Translations []TranslationResponse `json:"translations"`
	}

	// PredefinedIngredient is one entry of the catalog seed file.
	PredefinedIngredient struct {
		Name         string                  `json:"name"`
		Language     string                  `json:"language"`
		Translations []AddTranslationRequest `json:"translations"`
	}
)
