package apperr

import "github.com/gofiber/fiber/v2"

// Code - Wire üzerinde dönen hata kodu. İstemci, settlement hatalarını
// mesaj metnine bakmadan bu kodla ayırt eder.
type Code string

const (
	CodeInvalidInput           Code = "INVALID_INPUT"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeNotFound               Code = "NOT_FOUND"
	CodeConflict               Code = "CONFLICT"
	CodeTotalPriceExceeded     Code = "TOTAL_PRICE_EXCEEDED"
	CodeInsufficientCredits    Code = "INSUFFICIENT_CREDITS"
	CodeOfferedCreditsNotFound Code = "OFFERED_CREDITS_NOT_FOUND"
	CodeInternal               Code = "INTERNAL_SERVER_ERROR"
)

type Error struct {
	Code    Code
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, status int, msg string) *Error {
	return &Error{Code: code, Status: status, Message: msg}
}

func InvalidInput(msg string) *Error {
	return New(CodeInvalidInput, fiber.StatusBadRequest, msg)
}

func Unauthorized(msg string) *Error {
	return New(CodeUnauthorized, fiber.StatusUnauthorized, msg)
}

func NotFound(msg string) *Error {
	return New(CodeNotFound, fiber.StatusNotFound, msg)
}

func Conflict(msg string) *Error {
	return New(CodeConflict, fiber.StatusConflict, msg)
}

func TotalPriceExceeded(msg string) *Error {
	return New(CodeTotalPriceExceeded, fiber.StatusBadRequest, msg)
}

func InsufficientCredits(msg string) *Error {
	return New(CodeInsufficientCredits, fiber.StatusBadRequest, msg)
}

func OfferedCreditsNotFound(msg string) *Error {
	return New(CodeOfferedCreditsNotFound, fiber.StatusBadRequest, msg)
}

func Internal(msg string) *Error {
	return New(CodeInternal, fiber.StatusInternalServerError, msg)
}
