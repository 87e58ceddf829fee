package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "avtovybor/internal/log"
	"avtovybor/internal/quote"
	"avtovybor/internal/services"
	"avtovybor/internal/validate"
)

const (
	MsgTradeInOK   = "Заявка успешно отправлена!"
	MsgTradeInFail = "Не удалось сохранить заявку. Попробуйте позже."
)

type TradeInHandler struct {
	TradeIn *services.TradeInService
}

// Submit always answers 200; the outcome is in the success flag.
func (h *TradeInHandler) Submit(c *fiber.Ctx) error {
	var in validate.TradeInInput
	if err := c.BodyParser(&in); err != nil {
		applog.Security(c, "tradein.validation.fail", map[string]any{"field": "body"})
		return fail(c, validate.MsgAllFields, nil)
	}

	req, err := h.TradeIn.Submit(c.UserContext(), in)
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		applog.Security(c, "tradein.validation.fail", map[string]any{"field": ve.Field})
		return fail(c, ve.Message, fiber.Map{"field": ve.Field})
	case err != nil:
		// detail stays in the log
		applog.Error(c, "tradein.store.fail", err, map[string]any{"user_email": in.UserEmail})
		return fail(c, MsgTradeInFail, nil)
	}

	applog.Audit(c, "tradein.submit", map[string]any{
		"request_id": req.ID,
		"user_email": req.UserEmail,
		"estimate":   req.EstimatedPrice,
	})
	return c.JSON(fiber.Map{
		"success":         true,
		"message":         MsgTradeInOK,
		"requestId":       req.ID,
		"estimate":        req.EstimatedPrice,
		"estimateDisplay": quote.Format(req.EstimatedPrice) + " " + quote.DefaultCurrency,
	})
}

// Estimate prices a vehicle without storing anything.
func (h *TradeInHandler) Estimate(c *fiber.Ctx) error {
	year, err := validate.Year(c.Query("year"))
	if err != nil {
		return fail(c, validate.MsgYear, fiber.Map{"field": "year"})
	}
	mileage, err := validate.Mileage(c.Query("mileage"))
	if err != nil {
		return fail(c, validate.MsgMileage, fiber.Map{"field": "mileage"})
	}
	e := quote.Compute(year, mileage)
	return c.JSON(fiber.Map{"success": true, "estimate": e, "display": e.Display()})
}
