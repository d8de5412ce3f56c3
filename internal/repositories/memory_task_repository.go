package repository

import (
	"context"
	"fmt"
	"sync"

	apperrors "task-store.com/task-store/internal/errors"
	model "task-store.com/task-store/internal/models"
)

type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
	order []string
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[string]*model.Task),
	}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}

	r.tasks[task.ID] = task.Clone()
	r.order = append(r.order, task.ID)
	return nil
}

func (r *MemoryTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if filter.Matches(task) {
			tasks = append(tasks, *task.Clone())
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, id string, mutate MutateFunc) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[id]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}

	task := stored.Clone()
	if err := mutate(task); err != nil {
		return nil, err
	}
	task.ID = id

	r.tasks[id] = task
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return apperrors.ErrTaskNotFound
	}

	delete(r.tasks, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
