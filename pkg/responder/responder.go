package responder

import "github.com/gofiber/fiber/v2"

// JSON cevap zarfı: başarıda {"success":true, ...payload},
// hatada {"error": mesaj}. Tüm API handler'ları bu iki şekli kullanır.

// Success verilen payload'ı success:true ile birleştirip döner.
func Success(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// OK 200 ile başarı cevabı döner.
func OK(c *fiber.Ctx, payload fiber.Map) error {
	return Success(c, fiber.StatusOK, payload)
}

// Created 201 ile başarı cevabı döner.
func Created(c *fiber.Ctx, payload fiber.Map) error {
	return Success(c, fiber.StatusCreated, payload)
}

// Error verilen status ile {"error": mesaj} döner.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Sık kullanılan hata cevapları.

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Oturum bulunamadı veya geçersiz.")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Bu işlem için yetkiniz yok.")
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalError istemciye jenerik mesaj döner; asıl hata handler'da loglanır.
func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
}
