package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nc-usersync/core/history"
	"nc-usersync/core/logger"
)

type handler struct {
	store *history.Store
	log   *zap.Logger
}

func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// listRuns returns the most recent runs without their outcomes.
func (h *handler) listRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	runs, err := h.store.ListRuns(c.Context(), limit)
	if err != nil {
		logger.WithRequestID(h.log, c).Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list runs",
		})
	}
	return c.JSON(runs)
}

// getRun returns one run including its per-account outcomes.
func (h *handler) getRun(c *fiber.Ctx) error {
	id := c.Params("id")

	run, err := h.store.GetRun(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "run not found",
		})
	}
	if err != nil {
		logger.WithRequestID(h.log, c).Error("Failed to load run", zap.Error(err), zap.String("run", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load run",
		})
	}
	return c.JSON(run)
}
