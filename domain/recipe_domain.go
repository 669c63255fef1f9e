package domain

import (
	"encoding/json"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessShareRecipe     = "recipe shared successfully"
	MessageSuccessCopyRecipe      = "recipe copied successfully"
	MessageSuccessMarkAsCooked    = "recipe marked as cooked successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedShareRecipe     = "failed to share recipe"
	MessageFailedCopyRecipe      = "failed to copy recipe"
	MessageFailedMarkAsCooked    = "failed to mark recipe as cooked"

	ErrRecipeNotFound           = NewError(ErrNotFound, "recipe not found")
	ErrUnauthorizedRecipeAccess = NewError(ErrForbidden, "unauthorized access to recipe")
	ErrNoIngredients            = NewError(ErrValidation, "recipe needs at least one ingredient")
	ErrInvalidIngredientsJSON   = NewError(ErrValidation, "ingredients must be a JSON array of {name, quantity, unit}")
	ErrInvalidServings          = NewError(ErrValidation, "servings do not match the servings unit")
	ErrInvalidServingsUnit      = NewError(ErrValidation, "servings unit must be NUMBER, SPRINGFORM or BAKING_TRAY")
	ErrInvalidJSONField         = NewError(ErrValidation, "malformed JSON form field")
	ErrInvalidTimeField         = NewError(ErrValidation, "time fields must be non-negative integers")
	ErrShareWithSelf            = NewError(ErrValidation, "cannot share a recipe with yourself")
	ErrShareTargetRequired      = NewError(ErrValidation, "user_id or email is required")
)

type (
	RecipeIngredientRequest struct {
		Name     string   `json:"name" validate:"required,max=255"`
		Quantity *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit     *string  `json:"unit" validate:"omitempty,max=50"`
	}

	// CreateRecipeRequest is assembled by the handler from a multipart form.
	// JSON-valued form fields are decoded before validation.
	CreateRecipeRequest struct {
		Title            string                    `validate:"required,max=255"`
		Instructions     string                    `validate:"max=20000"`
		Ingredients      []RecipeIngredientRequest `validate:"required,min=1,dive"`
		Servings         json.RawMessage
		ServingsUnit     string                    `validate:"omitempty,servings_unit"`
		PrepTime         *int                      `validate:"omitempty,gte=0"`
		CookTime         *int                      `validate:"omitempty,gte=0"`
		RestTime         *int                      `validate:"omitempty,gte=0"`
		Source           string                    `validate:"max=500"`
		SpecialEquipment []string                  `validate:"dive,max=255"`
		Categories       []string                  `validate:"dive,required,max=100"`
		Language         string                    `validate:"max=20"`
		Thumbnail        *multipart.FileHeader
		Images           []*multipart.FileHeader
	}

	ShareRecipeRequest struct {
		UserID string `json:"user_id" validate:"omitempty,uuid"`
		Email  string `json:"email" validate:"omitempty,email"`
	}

	RecipeIngredientResponse struct {
		ID             string   `json:"id"`
		Name           string   `json:"name"`
		TranslatedName string   `json:"translated_name,omitempty"`
		Quantity       *float64 `json:"quantity"`
		Unit           *string  `json:"unit"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Title            string                     `json:"title"`
		Instructions     string                     `json:"instructions"`
		Servings         json.RawMessage            `json:"servings"`
		ServingsUnit     *string                    `json:"servings_unit"`
		PrepTime         *int                       `json:"prep_time"`
		CookTime         *int                       `json:"cook_time"`
		RestTime         *int                       `json:"rest_time"`
		TotalTime        int                        `json:"total_time"`
		ThumbnailURL     string                     `json:"thumbnail_url,omitempty"`
		ImageURLs        []string                   `json:"image_urls"`
		Source           string                     `json:"source,omitempty"`
		SpecialEquipment []string                   `json:"special_equipment"`
		OriginalID       string                     `json:"original_id,omitempty"`
		Owner            Owner                      `json:"owner"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		Categories       []string                   `json:"categories"`
		LastCookedAt     *time.Time                 `json:"last_cooked_at,omitempty"`
		CreatedAt        time.Time                  `json:"created_at"`
		ChangedAt        time.Time                  `json:"changed_at"`
	}

	// SpringformServings and BakingTrayServings are the structured servings
	// shapes; NUMBER servings are a bare positive integer.
	SpringformServings struct {
		Diameter int `json:"diameter"`
	}

	BakingTrayServings struct {
		Width  int `json:"width"`
		Length int `json:"length"`
	}
)
