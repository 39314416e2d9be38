package handlers

import (
	"biblio-backend/internal/core/services"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles dashboard statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview returns the dashboard counters
// @Summary Get statistics overview
// @Description Get borrowed books, user and pending request counters
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /stats [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.statsService.Overview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", overview)
}
