package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"avtovybor/internal/log"
	"avtovybor/internal/services"
	"avtovybor/internal/validate"
)

const MsgCarGone = "Автомобиль больше не доступен"

type ProductHandler struct {
	Catalog *services.CatalogService
}

// Detail returns one catalog car by its slug.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": MsgCarGone})
	}
	car, err := h.Catalog.GetCar(c.UserContext(), id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": MsgCarGone})
	case err != nil:
		log.Error(c, "catalog.get.fail", err, map[string]any{"id": id})
		return fail(c, MsgTryLater, nil)
	}
	return c.JSON(car)
}
