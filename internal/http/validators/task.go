package validators

import (
	"strings"
	"time"

	"task-store.com/task-store/internal/constants"
	dto "task-store.com/task-store/internal/data_models"
	apperrors "task-store.com/task-store/internal/errors"
	"task-store.com/task-store/internal/services"
)

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	var in services.CreateTaskInput

	if !r.Title.Present() || r.Title.Value == "" {
		return in, apperrors.NewValidationError("title", "is required")
	}
	if !r.Description.Present() {
		return in, apperrors.NewValidationError("description", "is required")
	}
	if !r.Priority.Present() {
		return in, apperrors.NewValidationError("priority", "is required")
	}
	priority, err := parsePriority(r.Priority.Value)
	if err != nil {
		return in, err
	}

	in.Title = r.Title.Value
	in.Description = r.Description.Value
	in.Priority = priority

	if r.DueDate.Present() {
		due, err := ParseDueDate(r.DueDate.Value)
		if err != nil {
			return in, err
		}
		in.DueDate = &due
	}
	in.AssignedTo = r.AssignedTo.Ptr()

	return in, nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.UpdateTaskInput, error) {
	var in services.UpdateTaskInput

	if r.Title.Set {
		if r.Title.Null || r.Title.Value == "" {
			return in, apperrors.NewValidationError("title", "must not be empty")
		}
		in.Title = r.Title.Ptr()
	}
	if r.Description.Set {
		if r.Description.Null {
			return in, apperrors.NewValidationError("description", "must not be null")
		}
		in.Description = r.Description.Ptr()
	}
	if r.Status.Set {
		if r.Status.Null {
			return in, apperrors.NewValidationError("status", "must not be null")
		}
		status, err := parseStatus(r.Status.Value)
		if err != nil {
			return in, err
		}
		in.Status = &status
	}
	if r.Priority.Set {
		if r.Priority.Null {
			return in, apperrors.NewValidationError("priority", "must not be null")
		}
		priority, err := parsePriority(r.Priority.Value)
		if err != nil {
			return in, err
		}
		in.Priority = &priority
	}
	if r.DueDate.Set {
		if r.DueDate.Null {
			in.ClearDueDate = true
		} else {
			due, err := ParseDueDate(r.DueDate.Value)
			if err != nil {
				return in, err
			}
			in.DueDate = &due
		}
	}
	if r.AssignedTo.Set {
		if r.AssignedTo.Null {
			in.ClearAssignedTo = true
		} else {
			in.AssignedTo = r.AssignedTo.Ptr()
		}
	}

	return in, nil
}

// ParseDueDate accepts RFC 3339 date-times; values without an offset are
// read as UTC.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("dueDate", "must be an RFC 3339 date-time")
}

func parseStatus(value string) (constants.TaskStatus, error) {
	status := constants.TaskStatus(value)
	if !status.Valid() {
		return "", apperrors.NewValidationError("status", "must be one of "+joinStatuses())
	}
	return status, nil
}

func parsePriority(value string) (constants.TaskPriority, error) {
	priority := constants.TaskPriority(value)
	if !priority.Valid() {
		return "", apperrors.NewValidationError("priority", "must be one of "+joinPriorities())
	}
	return priority, nil
}

func joinStatuses() string {
	values := make([]string, len(constants.TaskStatuses))
	for i, s := range constants.TaskStatuses {
		values[i] = string(s)
	}
	return strings.Join(values, ", ")
}

func joinPriorities() string {
	values := make([]string, len(constants.TaskPriorities))
	for i, p := range constants.TaskPriorities {
		values[i] = string(p)
	}
	return strings.Join(values, ", ")
}
