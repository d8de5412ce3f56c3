package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v2"

	"task-store.com/task-store/internal/constants"
	dto "task-store.com/task-store/internal/data_models"
	apperrors "task-store.com/task-store/internal/errors"
	"task-store.com/task-store/internal/http/validators"
	repository "task-store.com/task-store/internal/repositories"
	"task-store.com/task-store/internal/services"
)

const Banner = "Task Store API"

type Handler struct {
	taskService *services.TaskService
	document    *Document
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) Index(c echo.Context) error {
	return c.String(http.StatusOK, Banner)
}

func (h *Handler) ListTasks(c echo.Context) error {
	var q dto.ListTasksQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return apperrors.NewValidationError("query", "is malformed")
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), repository.TaskFilter{
		Status:     constants.TaskStatus(q.Status),
		Priority:   constants.TaskPriority(q.Priority),
		AssignedTo: q.AssignedTo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListDueToday(c echo.Context) error {
	tasks, err := h.taskService.ListDueToday(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListOverdue(c echo.Context) error {
	tasks, err := h.taskService.ListOverdue(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// bindBody decodes a JSON request body. A non-empty body sent under another
// content type is rejected with 415 rather than reported as malformed JSON.
func bindBody(c echo.Context, dst any) error {
	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, echo.ErrUnsupportedMediaType):
		return apperrors.ErrUnsupportedMediaType
	default:
		return apperrors.ErrInvalidJSON
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	var req dto.UpdateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateUpdateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

func (h *Handler) OpenAPIJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, h.document)
}

func (h *Handler) OpenAPIYAML(c echo.Context) error {
	out, err := yaml.Marshal(h.document)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "application/yaml", out)
}
