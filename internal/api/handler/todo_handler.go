package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List handles GET /v1/todos.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        search           query     string  false  "Substring match on title or description"
// @Param        tags             query     string  false  "Comma-separated tags; matches todos sharing at least one"
// @Param        completed        query     bool    false  "Filter by completion status"
// @Param        deadline_before  query     string  false  "RFC 3339 timestamp; only todos with a deadline at or before it"
// @Success      200              {array}   todoResponse
// @Failure      401              {object}  errorResponse
// @Router       /v1/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input, err := listInputFromQuery(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), input, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// Create handles POST /v1/todos.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo fields"
// @Success      201   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.service.Create(c.Request().Context(), ports.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Deadline:    req.Deadline,
	}, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// Update handles PUT /v1/todos/:id.
//
// @Summary      Update a todo (partial merge)
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      200   {object}  todoResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	todo, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTodoFields{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Tags:        req.Tags,
		Deadline:    req.Deadline,
	}, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Share handles POST /v1/todos/:id/share.
//
// @Summary      Share a todo with other users
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Todo id"
// @Param        body  body      shareTodoRequest  true  "User ids to grant access"
// @Success      200   {object}  todoResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/todos/{id}/share [post]
func (h *TodoHandler) Share(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req shareTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.service.Share(c.Request().Context(), c.Param("id"), req.UserIDs, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete handles DELETE /v1/todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listInputFromQuery parses the optional filter query parameters.
func listInputFromQuery(c echo.Context) (ports.ListTodosInput, error) {
	input := ports.ListTodosInput{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}

	switch c.QueryParam("completed") {
	case "":
	case "true":
		v := true
		input.Completed = &v
	case "false":
		v := false
		input.Completed = &v
	default:
		return input, echo.NewHTTPError(http.StatusBadRequest, "completed must be true or false")
	}

	if raw := c.QueryParam("deadline_before"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return input, echo.NewHTTPError(http.StatusBadRequest, "deadline_before must be an RFC 3339 timestamp")
		}
		input.DeadlineBefore = &ts
	}

	return input, nil
}
