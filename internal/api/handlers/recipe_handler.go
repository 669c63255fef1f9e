package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetSharedRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ShareRecipe(c *fiber.Ctx) error
		CopyRecipe(c *fiber.Ctx) error
		MarkAsCooked(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListRecipes(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetSharedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListSharedRecipes(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, domain.ErrInvalidMultipart)
	}

	req, err := parseCreateRecipeForm(form)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) ShareRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	req := new(domain.ShareRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareRecipe, err)
	}

	if err := h.recipeService.ShareRecipe(c.Context(), recipeID, userID, *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedShareRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareRecipe)
}

func (h *recipeHandler) CopyRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.CopyRecipe(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCopyRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCopyRecipe)
}

func (h *recipeHandler) MarkAsCooked(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.MarkAsCooked(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedMarkAsCooked, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkAsCooked)
}

// parseCreateRecipeForm decodes the JSON-valued form fields. Empty optional
// fields stay nil.
func parseCreateRecipeForm(form *multipart.Form) (*domain.CreateRecipeRequest, error) {
	req := &domain.CreateRecipeRequest{
		Title:        formValue(form, "title"),
		Instructions: formValue(form, "instructions"),
		ServingsUnit: strings.ToUpper(formValue(form, "servings_unit")),
		Source:       formValue(form, "source"),
		Language:     strings.ToLower(formValue(form, "language")),
	}

	if raw := formValue(form, "ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Ingredients); err != nil {
			return nil, domain.ErrInvalidIngredientsJSON
		}
	}
	if len(req.Ingredients) == 0 {
		return nil, domain.ErrNoIngredients
	}

	if raw := formValue(form, "servings"); raw != "" {
		if !json.Valid([]byte(raw)) {
			return nil, domain.ErrInvalidServings
		}
		req.Servings = json.RawMessage(raw)
	}

	if err := decodeStringList(form, "special_equipment", &req.SpecialEquipment); err != nil {
		return nil, err
	}
	if err := decodeStringList(form, "categories", &req.Categories); err != nil {
		return nil, err
	}

	var err error
	if req.PrepTime, err = optionalMinutes(form, "prep_time"); err != nil {
		return nil, err
	}
	if req.CookTime, err = optionalMinutes(form, "cook_time"); err != nil {
		return nil, err
	}
	if req.RestTime, err = optionalMinutes(form, "rest_time"); err != nil {
		return nil, err
	}

	if files := form.File["thumbnail"]; len(files) > 0 {
		req.Thumbnail = files[0]
	}
	req.Images = append(req.Images, form.File["images"]...)
	req.Images = append(req.Images, form.File["images[]"]...)

	return req, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func decodeStringList(form *multipart.Form, key string, dst *[]string) error {
	raw := formValue(form, key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return domain.NewError(domain.ErrValidation, key+": "+domain.ErrInvalidJSONField.Message)
	}
	return nil
}

func optionalMinutes(form *multipart.Form, key string) (*int, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return nil, domain.ErrInvalidTimeField
	}
	return &minutes, nil
}
