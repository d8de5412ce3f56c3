package http

import (
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"task-store.com/task-store/internal/constants"
)

type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

// PathItem maps a lower-case HTTP method to its operation.
type PathItem map[string]*Operation

type Operation struct {
	OperationID string              `json:"operationId" yaml:"operationId"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required" yaml:"required"`
	Schema   *Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required" yaml:"required"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

type Schema struct {
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Enum       []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Nullable   bool               `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	MinLength  *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
}

type RouteDoc struct {
	OperationID string
	Summary     string
	Query       []QueryDoc
	// Request names a component schema used as the JSON request body.
	Request   string
	Responses []ResponseDoc
}

type QueryDoc struct {
	Name   string
	Schema *Schema
}

type ResponseDoc struct {
	Status      int
	Description string
	ContentType string
	Schema      *Schema
}

// BuildOpenAPI derives an OpenAPI 3 document from the registered routes.
func BuildOpenAPI(routes []Route) *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:   Banner,
			Version: "1.0.0",
		},
		Paths:      make(map[string]PathItem),
		Components: Components{Schemas: componentSchemas()},
	}

	for _, r := range routes {
		path, params := openAPIPath(r.Path)

		item, ok := doc.Paths[path]
		if !ok {
			item = make(PathItem)
			doc.Paths[path] = item
		}

		op := &Operation{
			OperationID: r.Doc.OperationID,
			Summary:     r.Doc.Summary,
			Responses:   make(map[string]Response),
		}

		for _, name := range params {
			op.Parameters = append(op.Parameters, Parameter{
				Name: name, In: "path", Required: true, Schema: &Schema{Type: "string"},
			})
		}
		for _, q := range r.Doc.Query {
			op.Parameters = append(op.Parameters, Parameter{Name: q.Name, In: "query", Schema: q.Schema})
		}

		if r.Doc.Request != "" {
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{echo.MIMEApplicationJSON: {Schema: ref(r.Doc.Request)}},
			}
		}

		for _, resp := range r.Doc.Responses {
			contentType := resp.ContentType
			if contentType == "" {
				contentType = echo.MIMEApplicationJSON
			}
			out := Response{Description: resp.Description}
			if resp.Schema != nil {
				out.Content = map[string]MediaType{contentType: {Schema: resp.Schema}}
			}
			op.Responses[strconv.Itoa(resp.Status)] = out
		}

		item[strings.ToLower(r.Method)] = op
	}

	return doc
}

// openAPIPath rewrites echo's :name segments to {name}.
func openAPIPath(path string) (string, []string) {
	segments := strings.Split(path, "/")
	var params []string
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			name := s[1:]
			params = append(params, name)
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/"), params
}

func componentSchemas() map[string]*Schema {
	one := 1
	str := func() *Schema { return &Schema{Type: "string"} }
	nullableStr := func() *Schema { return &Schema{Type: "string", Nullable: true} }
	dateTime := func(nullable bool) *Schema { return &Schema{Type: "string", Format: "date-time", Nullable: nullable} }

	status := enumSchema(statusValues())
	priority := enumSchema(priorityValues())

	return map[string]*Schema{
		"Task": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":          str(),
				"title":       str(),
				"description": str(),
				"status":      status,
				"priority":    priority,
				"dueDate":     dateTime(true),
				"assignedTo":  nullableStr(),
				"createdAt":   dateTime(false),
				"updatedAt":   dateTime(false),
			},
			Required: []string{"id", "title", "description", "status", "priority", "dueDate", "assignedTo", "createdAt", "updatedAt"},
		},
		"CreateTaskRequest": {
			Type: "object",
			Properties: map[string]*Schema{
				"title":       {Type: "string", MinLength: &one},
				"description": str(),
				"priority":    priority,
				"dueDate":     dateTime(true),
				"assignedTo":  nullableStr(),
			},
			Required: []string{"title", "description", "priority"},
		},
		"UpdateTaskRequest": {
			Type: "object",
			Properties: map[string]*Schema{
				"title":       {Type: "string", MinLength: &one},
				"description": str(),
				"status":      status,
				"priority":    priority,
				"dueDate":     dateTime(true),
				"assignedTo":  nullableStr(),
			},
		},
		"Message": {
			Type:       "object",
			Properties: map[string]*Schema{"message": str()},
			Required:   []string{"message"},
		},
	}
}

func ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func arrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

func enumSchema(values []string) *Schema {
	return &Schema{Type: "string", Enum: values}
}

func statusValues() []string {
	out := make([]string, len(constants.TaskStatuses))
	for i, s := range constants.TaskStatuses {
		out[i] = string(s)
	}
	return out
}

func priorityValues() []string {
	out := make([]string, len(constants.TaskPriorities))
	for i, p := range constants.TaskPriorities {
		out[i] = string(p)
	}
	return out
}

// OperationIDs lists the operation ids in the document, sorted.
func (d *Document) OperationIDs() []string {
	var ids []string
	for _, item := range d.Paths {
		for _, op := range item {
			ids = append(ids, op.OperationID)
		}
	}
	sort.Strings(ids)
	return ids
}
