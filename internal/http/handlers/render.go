package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"avtovybor/internal/quote"
)

const (
	MsgTryLater = "Что-то пошло не так. Попробуйте позже."
	MsgNotFound = "Страница не найдена"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["MinYear"] = quote.MinYear
	data["MaxYear"] = quote.MaxYear
	return c.Render(tmpl, data)
}

// fail is the uniform negative API answer: HTTP 200 with success=false.
func fail(c *fiber.Ctx, msg string, extra fiber.Map) error {
	body := fiber.Map{"success": false, "message": msg}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// NotFound answers JSON under /api and the HTML page elsewhere.
func NotFound(c *fiber.Ctx) error {
	if isAPI(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "API endpoint not found"})
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": MsgNotFound})
}
