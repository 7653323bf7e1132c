package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/core/ports"
)

// ActivityHandler serves the caller's audit feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Feed handles GET /v1/activity.
//
// @Summary      Get the caller's recent activity
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of events (default 50)"
// @Success      200    {array}   activityEventResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/activity [get]
func (h *ActivityHandler) Feed(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	events, err := h.service.Feed(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}

	out := make([]activityEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, activityEventResponse{
			ID:        e.ID,
			TodoID:    e.TodoID,
			ActorID:   e.ActorID,
			Action:    string(e.Action),
			Detail:    e.Detail,
			Timestamp: e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, out)
}
