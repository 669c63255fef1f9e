package handlers

import (
	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/pkg/cookbook"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CookbookHandler interface {
		CreateCookbook(c *fiber.Ctx) error
		GetCookbooks(c *fiber.Ctx) error
		GetCookbook(c *fiber.Ctx) error
		AddMember(c *fiber.Ctx) error
		AddChapter(c *fiber.Ctx) error
		AddRecipeToChapter(c *fiber.Ctx) error
		GiveFeedback(c *fiber.Ctx) error
		GetFeedback(c *fiber.Ctx) error
	}

	cookbookHandler struct {
		cookbookService cookbook.CookbookService
		validator       *validator.Validate
	}
)

func NewCookbookHandler(cookbookService cookbook.CookbookService, validator *validator.Validate) CookbookHandler {
	return &cookbookHandler{
		cookbookService: cookbookService,
		validator:       validator,
	}
}

func (h *cookbookHandler) CreateCookbook(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateCookbookRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCookbook, err)
	}

	res, err := h.cookbookService.CreateCookbook(c.Context(), *req, userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateCookbook, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCookbook)
}

func (h *cookbookHandler) GetCookbooks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cookbookService.ListCookbooks(c.Context(), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCookbooks, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCookbooks)
}

func (h *cookbookHandler) GetCookbook(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cookbookService.GetCookbook(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCookbook, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCookbook)
}

func (h *cookbookHandler) AddMember(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddMemberRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMember, err)
	}

	res, err := h.cookbookService.AddMember(c.Context(), c.Params("id"), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddMember, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddMember)
}

func (h *cookbookHandler) AddChapter(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddChapterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddChapter, err)
	}

	res, err := h.cookbookService.AddChapter(c.Context(), c.Params("id"), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddChapter, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddChapter)
}

func (h *cookbookHandler) AddRecipeToChapter(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddRecipeToChapterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipeToChapter, err)
	}

	res, err := h.cookbookService.AddRecipeToChapter(c.Context(), c.Params("id"), c.Params("chapterId"), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddRecipeToChapter, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddRecipeToChapter)
}

func (h *cookbookHandler) GiveFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.FeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGiveFeedback, err)
	}

	res, err := h.cookbookService.GiveFeedback(c.Context(), c.Params("placementId"), userID, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGiveFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGiveFeedback)
}

func (h *cookbookHandler) GetFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.cookbookService.ListFeedback(c.Context(), c.Params("placementId"), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFeedback)
}
