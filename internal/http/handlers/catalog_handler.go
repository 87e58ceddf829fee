package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "avtovybor/internal/log"
	"avtovybor/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// List returns the catalog as a plain JSON array.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	cars, err := h.Catalog.ListCars(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("size", 0))
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return fail(c, MsgTryLater, nil)
	}
	return c.JSON(cars)
}
