package presenters

import (
	"errors"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/utils/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusCode maps a domain error kind to its HTTP status. Errors of no known
// kind are internal.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError answers with the status of err's kind. Internal errors are
// logged and their text is not sent to the client.
func HandleError(c *fiber.Ctx, message string, err error) error {
	status := StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.L.Error(message,
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return ErrorResponse(c, status, message, errors.New(domain.MessageInternalError))
	}

	var unknown *domain.UnknownIngredientsError
	if errors.As(err, &unknown) {
		return c.Status(status).JSON(Response{
			Status:  false,
			Message: message,
			Data:    fiber.Map{"unknown_ingredients": unknown.Names},
			Error:   err.Error(),
		})
	}

	return ErrorResponse(c, status, message, err)
}

// FiberErrorHandler renders errors returned by fiber itself, such as unknown
// routes or oversized bodies, in the same envelope.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fe.Code, fe.Message, nil)
	}
	return HandleError(c, domain.MessageFailedProcessRequest, err)
}
