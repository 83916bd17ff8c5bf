package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nc-usersync/core/history"
	"nc-usersync/core/logger"
	"nc-usersync/core/middleware/auth"
	"nc-usersync/core/middleware/reqid"
)

// New builds the Fiber application serving the run history API.
func New(cfg Config, store *history.Store, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	// Request ID must be first so everything downstream can trace.
	app.Use(reqid.New())

	// Logging middleware (Zap + request ID).
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRequestID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", handleHealth)

	// Everything below is protected.
	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	h := &handler{store: store, log: log}
	app.Get("/runs", h.listRuns)
	app.Get("/runs/:id", h.getRun)

	return app
}
