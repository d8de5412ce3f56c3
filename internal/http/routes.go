package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	middleware "task-store.com/task-store/internal/http/middlewares"
)

type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Doc     RouteDoc
}

// Routes lists every endpoint. Literal /tasks/... paths come before
// /tasks/:id so they can never be read as an id.
func Routes(h *Handler) []Route {
	taskList := ResponseDoc{Status: http.StatusOK, Description: "matching tasks", Schema: arrayOf(ref("Task"))}
	task := ResponseDoc{Status: http.StatusOK, Description: "the task", Schema: ref("Task")}
	notFound := ResponseDoc{Status: http.StatusNotFound, Description: "task not found", Schema: ref("Message")}
	badRequest := ResponseDoc{Status: http.StatusBadRequest, Description: "malformed or invalid payload", Schema: ref("Message")}
	unsupported := ResponseDoc{Status: http.StatusUnsupportedMediaType, Description: "body is not application/json", Schema: ref("Message")}

	return []Route{
		{
			Method: http.MethodGet, Path: "/", Handler: h.Index,
			Doc: RouteDoc{
				OperationID: "index",
				Summary:     "Service banner",
				Responses:   []ResponseDoc{{Status: http.StatusOK, Description: "banner", ContentType: echo.MIMETextPlain, Schema: &Schema{Type: "string"}}},
			},
		},
		{
			Method: http.MethodGet, Path: "/openapi.json", Handler: h.OpenAPIJSON,
			Doc: RouteDoc{
				OperationID: "openapiJSON",
				Summary:     "API description as JSON",
				Responses:   []ResponseDoc{{Status: http.StatusOK, Description: "OpenAPI document", Schema: &Schema{Type: "object"}}},
			},
		},
		{
			Method: http.MethodGet, Path: "/openapi.yaml", Handler: h.OpenAPIYAML,
			Doc: RouteDoc{
				OperationID: "openapiYAML",
				Summary:     "API description as YAML",
				Responses:   []ResponseDoc{{Status: http.StatusOK, Description: "OpenAPI document", ContentType: "application/yaml", Schema: &Schema{Type: "string"}}},
			},
		},
		{
			Method: http.MethodGet, Path: "/tasks", Handler: h.ListTasks,
			Doc: RouteDoc{
				OperationID: "listTasks",
				Summary:     "List tasks matching every supplied filter",
				Query: []QueryDoc{
					{Name: "status", Schema: enumSchema(statusValues())},
					{Name: "priority", Schema: enumSchema(priorityValues())},
					{Name: "assignedTo", Schema: &Schema{Type: "string"}},
				},
				Responses: []ResponseDoc{taskList},
			},
		},
		{
			Method: http.MethodGet, Path: "/tasks/due-today", Handler: h.ListDueToday,
			Doc: RouteDoc{
				OperationID: "listDueToday",
				Summary:     "List tasks due on the current calendar day",
				Responses:   []ResponseDoc{taskList},
			},
		},
		{
			Method: http.MethodGet, Path: "/tasks/overdue", Handler: h.ListOverdue,
			Doc: RouteDoc{
				OperationID: "listOverdue",
				Summary:     "List unfinished tasks past their due date",
				Responses:   []ResponseDoc{taskList},
			},
		},
		{
			Method: http.MethodPost, Path: "/tasks", Handler: h.CreateTask,
			Doc: RouteDoc{
				OperationID: "createTask",
				Summary:     "Create a task",
				Request:     "CreateTaskRequest",
				Responses: []ResponseDoc{
					{Status: http.StatusCreated, Description: "the created task", Schema: ref("Task")},
					badRequest,
					unsupported,
				},
			},
		},
		{
			Method: http.MethodGet, Path: "/tasks/:id", Handler: h.GetTask,
			Doc: RouteDoc{
				OperationID: "getTask",
				Summary:     "Fetch a task",
				Responses:   []ResponseDoc{task, notFound},
			},
		},
		{
			Method: http.MethodPut, Path: "/tasks/:id", Handler: h.UpdateTask,
			Doc: RouteDoc{
				OperationID: "updateTask",
				Summary:     "Update the supplied fields of a task",
				Request:     "UpdateTaskRequest",
				Responses:   []ResponseDoc{task, badRequest, notFound, unsupported},
			},
		},
		{
			Method: http.MethodDelete, Path: "/tasks/:id", Handler: h.DeleteTask,
			Doc: RouteDoc{
				OperationID: "deleteTask",
				Summary:     "Delete a task",
				Responses: []ResponseDoc{
					{Status: http.StatusOK, Description: "confirmation", Schema: ref("Message")},
					notFound,
				},
			},
		},
	}
}

func Register(e *echo.Echo, h *Handler, log zerolog.Logger, middlewares ...echo.MiddlewareFunc) {
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middlewares...)

	routes := Routes(h)
	h.document = BuildOpenAPI(routes)

	for _, r := range routes {
		e.Add(r.Method, r.Path, r.Handler).Name = r.Doc.OperationID
	}
}
