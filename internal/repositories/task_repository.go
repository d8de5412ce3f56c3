package repository

import (
	"context"
	"time"

	"task-store.com/task-store/internal/constants"
	model "task-store.com/task-store/internal/models"
)

// TaskFilter constrains List. Zero-valued fields impose no constraint; the
// due window is half-open, [DueFrom, DueBefore).
type TaskFilter struct {
	Status        constants.TaskStatus
	Priority      constants.TaskPriority
	AssignedTo    string
	DueFrom       *time.Time
	DueBefore     *time.Time
	ExcludeStatus constants.TaskStatus
}

func (f TaskFilter) Matches(task *model.Task) bool {
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.AssignedTo != "" && (task.AssignedTo == nil || *task.AssignedTo != f.AssignedTo) {
		return false
	}
	if f.ExcludeStatus != "" && task.Status == f.ExcludeStatus {
		return false
	}
	if f.DueFrom != nil || f.DueBefore != nil {
		if task.DueDate == nil {
			return false
		}
		if f.DueFrom != nil && task.DueDate.Before(*f.DueFrom) {
			return false
		}
		if f.DueBefore != nil && !task.DueDate.Before(*f.DueBefore) {
			return false
		}
	}
	return true
}

// MutateFunc edits a task in place during Update. Returning an error aborts
// the update and leaves the stored task untouched.
type MutateFunc func(task *model.Task) error

// TaskRepository owns every Task record. Implementations return values that
// callers may modify freely without affecting stored state.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, id string, mutate MutateFunc) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}
