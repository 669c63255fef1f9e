package domain

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalError        = "internal server error"

	ErrParseUUID        = NewError(ErrValidation, "failed to parse UUID")
	ErrInvalidMultipart = NewError(ErrValidation, "invalid multipart form")
	ErrTokenNotFound    = NewError(ErrUnauthorized, "failed to token not found")
	ErrTokenInvalid     = NewError(ErrUnauthorized, "token invalid")
	ErrTokenExpired     = NewError(ErrUnauthorized, "token expired")
	ErrUserNotAllowed   = NewError(ErrForbidden, "user not allowed")
)
