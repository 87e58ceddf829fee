package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"avtovybor/internal/log"
	"avtovybor/internal/services"
	"avtovybor/internal/validate"
)

const (
	MsgRegistered   = "Успешная регистрация"
	MsgEmailTaken   = "Пользователь с таким email уже зарегистрирован"
	MsgRegisterFail = "Ошибка регистрации. Попробуйте позже."
	MsgLoggedIn     = "Вход выполнен"
	MsgBadCreds     = "Неверный логин или пароль"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, MsgRegisterFail, nil)
	}
	u, err := h.Auth.Register(c.UserContext(), in.Email, in.Password)
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		log.Security(c, "validation.fail", map[string]any{"field": "email"})
		return fail(c, validate.MsgEmail, fiber.Map{"field": "email"})
	case errors.Is(err, services.ErrWeakPassword):
		log.Security(c, "validation.fail", map[string]any{"field": "password"})
		return fail(c, validate.MsgPassword, fiber.Map{"field": "password"})
	case errors.Is(err, services.ErrEmailTaken):
		log.Security(c, "auth.register.duplicate", map[string]any{"email": in.Email})
		return fail(c, MsgEmailTaken, nil)
	case err != nil:
		log.Error(c, "auth.register.fail", err, map[string]any{"email": in.Email})
		return fail(c, MsgRegisterFail, nil)
	}
	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"success": true, "message": MsgRegistered})
}

// Login only verifies credentials. The client keeps the returned email as
// its identity tag; no server session is created.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, MsgBadCreds, nil)
	}
	u, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return fail(c, MsgBadCreds, nil)
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{
		"success": true,
		"message": MsgLoggedIn,
		"user":    fiber.Map{"email": u.Email},
	})
}
