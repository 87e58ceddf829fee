package handlers

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"avtovybor/internal/config"
	applog "avtovybor/internal/log"
)

const maxBody = 1 << 20 // 1 MiB

// NewApp builds the fiber application with middleware and every route.
// accessLog receives the per-request access lines; nil means stdout.
func NewApp(cfg config.Config, d *Deps, accessLog io.Writer) *fiber.App {
	if accessLog == nil {
		accessLog = os.Stdout
	}
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    maxBody,
		ErrorHandler: errorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: accessLog}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/static/") || strings.HasSuffix(c.Path(), "health")
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "Слишком много запросов. Попробуйте позже."})
			},
		}))
	}

	// ---------- Static assets ----------
	app.Static("/static", cfg.StaticDir)

	// ---------- Pages ----------
	app.Get("/", d.PageHandler.Home)
	app.Get("/trade-in", d.PageHandler.TradeIn)
	app.Get("/login", d.PageHandler.Login)

	// ---------- API ----------
	api := app.Group("/api")
	api.Post("/register", d.AuthHandler.Register)
	loginHandlers := []fiber.Handler{d.AuthHandler.Login}
	if cfg.LoginLimit > 0 {
		loginHandlers = append([]fiber.Handler{limiter.New(limiter.Config{
			Max:        cfg.LoginLimit,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "Слишком много попыток входа. Попробуйте позже."})
			},
		})}, loginHandlers...)
	}
	api.Post("/login", loginHandlers...)

	api.Post("/trade-in", d.TradeInHandler.Submit)
	api.Post("/tradein", d.TradeInHandler.Submit) // path used by older pages
	api.Get("/trade-in/estimate", d.TradeInHandler.Estimate)
	api.Get("/products", d.CatalogHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/health", d.HealthHandler.Ready)

	// Health & 404
	app.Get("/health", d.HealthHandler.Live)
	app.Use(NotFound)

	return app
}

// errorHandler logs the cause and answers without internal details.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})

	msg := MsgTryLater
	if code == fiber.StatusRequestEntityTooLarge {
		msg = "Слишком большой запрос."
	}
	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"success": false, "message": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
