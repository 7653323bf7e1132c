package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/api/metrics"
)

// CountTodoOperations increments the per-operation counter for requests
// hitting the todo routes. Registered on the /v1/todos group.
func CountTodoOperations() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.TodoOperationsTotal.WithLabelValues(operationFor(c)).Inc()
			return next(c)
		}
	}
}

func operationFor(c echo.Context) string {
	switch c.Request().Method {
	case http.MethodPost:
		if strings.HasSuffix(c.Path(), "/share") {
			return "share"
		}
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	case http.MethodGet:
		return "read"
	default:
		return "other"
	}
}
