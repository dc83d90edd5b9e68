package common

import "github.com/gofiber/fiber/v2"

// Tüm cevaplar {success, data?, error?} zarfıyla döner.

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func Paginated(c *fiber.Ctx, data interface{}, p Pagination) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}

func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message},
	})
}
