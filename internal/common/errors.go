package common

import (
	"errors"
	"log"

	"loop-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// Durum kodundan hata taksonomisine kaba eşleme; fiber.NewError ile
// dönen hatalar için kullanılır.
func codeForStatus(status int) apperr.Code {
	switch status {
	case fiber.StatusBadRequest:
		return apperr.CodeInvalidInput
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return apperr.CodeUnauthorized
	case fiber.StatusNotFound:
		return apperr.CodeNotFound
	case fiber.StatusConflict:
		return apperr.CodeConflict
	default:
		return apperr.CodeInternal
	}
}

// ErrorHandler - Tüm hataları {success:false, error:{code,message}} zarfına çevirir.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return Fail(c, appErr.Status, string(appErr.Code), appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Fail(c, fiberErr.Code, string(codeForStatus(fiberErr.Code)), fiberErr.Message)
	}

	log.Println("Beklenmeyen hata:", err)
	return Fail(c, fiber.StatusInternalServerError, string(apperr.CodeInternal), "Beklenmeyen sunucu hatası")
}
