package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "avtovybor/internal/log"
	"avtovybor/internal/services"
)

type PageHandler struct {
	Catalog *services.CatalogService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	cars, err := h.Catalog.ListCars(c.UserContext(), 1, 12)
	if err != nil {
		// the page still renders without the gallery
		applog.Error(c, "page.home.cars", err, nil)
	}
	return render(c, "index", fiber.Map{"Cars": cars})
}

func (h *PageHandler) TradeIn(c *fiber.Ctx) error {
	return render(c, "tradein", nil)
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return render(c, "login", nil)
}
