package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-store.com/task-store/internal/constants"
	model "task-store.com/task-store/internal/models"
	repository "task-store.com/task-store/internal/repositories"
)

type TaskService struct {
	repo     repository.TaskRepository
	now      func() time.Time
	location *time.Location
}

type Option func(*TaskService)

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

// WithLocation sets the zone whose calendar day ListDueToday uses.
func WithLocation(loc *time.Location) Option {
	return func(s *TaskService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewTaskService(repo repository.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:     repo,
		now:      time.Now,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTaskInput holds already validated fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    constants.TaskPriority
	DueDate     *time.Time
	AssignedTo  *string
}

// UpdateTaskInput holds already validated fields. A nil pointer leaves the
// field unchanged; ClearDueDate and ClearAssignedTo reset the optional fields.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Status          *constants.TaskStatus
	Priority        *constants.TaskPriority
	DueDate         *time.Time
	ClearDueDate    bool
	AssignedTo      *string
	ClearAssignedTo bool
}

func (s *TaskService) clock() time.Time {
	return s.now().UTC()
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	now := s.clock()

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      constants.StatusPending,
		Priority:    in.Priority,
		DueDate:     utcPtr(in.DueDate),
		AssignedTo:  in.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*model.Task, error) {
	now := s.clock()

	return s.repo.Update(ctx, id, func(task *model.Task) error {
		applyUpdate(task, in)

		if now.After(task.UpdatedAt) {
			task.UpdatedAt = now
		}
		return nil
	})
}

func applyUpdate(task *model.Task, in UpdateTaskInput) {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.ClearDueDate {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = utcPtr(in.DueDate)
	}
	if in.ClearAssignedTo {
		task.AssignedTo = nil
	} else if in.AssignedTo != nil {
		assignee := *in.AssignedTo
		task.AssignedTo = &assignee
	}
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListDueToday returns tasks due on the current calendar day in the service
// location.
func (s *TaskService) ListDueToday(ctx context.Context) ([]model.Task, error) {
	local := s.now().In(s.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1)

	return s.repo.List(ctx, repository.TaskFilter{
		DueFrom:   &start,
		DueBefore: &end,
	})
}

// ListOverdue returns unfinished tasks whose due date has passed.
func (s *TaskService) ListOverdue(ctx context.Context) ([]model.Task, error) {
	now := s.clock()

	return s.repo.List(ctx, repository.TaskFilter{
		DueBefore:     &now,
		ExcludeStatus: constants.StatusCompleted,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
