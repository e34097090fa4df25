package calendar

import (
	"errors"
	"time"

	"gig-calendar/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the calendar.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the calendar routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/calendar")
	group.Get("/venues", h.HandleListVenues)
	group.Get("/venues/:id/events", h.HandleMonthEvents)
}

// HandleListVenues lists every known venue.
// @Summary List Venues
// @Description List all venues in the calendar, crawlable or not.
// @Tags calendar
// @Accept json
// @Produce json
// @Success 200 {array} models.Venue "Venues"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /calendar/venues [get]
func (h *Handler) HandleListVenues(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	venues, err := h.service.Venues(c.Context())
	if err != nil {
		l.Error("Venue listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(venues)
}

// HandleMonthEvents returns one venue's events for a month.
// @Summary Get Month Events
// @Description Get a venue's reconciled events for one month. The month window is evaluated in the venue's own timezone.
// @Tags calendar
// @Accept json
// @Produce json
// @Param id path int true "Venue ID"
// @Param month query string false "Month as YYYY-MM (defaults to the current month)"
// @Success 200 {array} models.Event "Events"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Venue Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /calendar/venues/{id}/events [get]
func (h *Handler) HandleMonthEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "venue id must be a positive integer",
		})
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	events, err := h.service.MonthView(c.Context(), uint(id), month)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadMonth):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrVenueNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Month view failed", zap.Error(err),
			zap.Int("venue", id), zap.String("month", month))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(events)
}
