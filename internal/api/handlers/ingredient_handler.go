package handlers

import (
	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		AddTranslation(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
		DeleteTranslation(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.ingredientService.List(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) CreateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.ingredientService.Create(c.Context(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *ingredientHandler) AddTranslation(c *fiber.Ctx) error {
	ingredientID := c.Params("id")

	req := new(domain.AddTranslationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddTranslation, err)
	}

	res, err := h.ingredientService.AddTranslation(c.Context(), ingredientID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddTranslation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddTranslation)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.ingredientService.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *ingredientHandler) DeleteTranslation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	err := h.ingredientService.DeleteTranslation(c.Context(), c.Params("id"), c.Params("translationId"), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteTranslation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTranslation)
}
