package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "task-store.com/task-store/internal/errors"
	model "task-store.com/task-store/internal/models"
)

type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	return findByID(r.db.WithContext(ctx), id)
}

func findByID(db *gorm.DB, id string) (*model.Task, error) {
	var task model.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != "" {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.ExcludeStatus != "" {
		query = query.Where("status <> ?", filter.ExcludeStatus)
	}
	if filter.DueFrom != nil || filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL")
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", filter.DueFrom.UTC())
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", filter.DueBefore.UTC())
	}

	tasks := make([]model.Task, 0)
	if err := query.Order("rowid asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, id string, mutate MutateFunc) (*model.Task, error) {
	var updated *model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findByID(tx, id)
		if err != nil {
			return err
		}

		if err := mutate(task); err != nil {
			return err
		}
		task.ID = id

		res := tx.Model(&model.Task{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"title":       task.Title,
				"description": task.Description,
				"status":      task.Status,
				"priority":    task.Priority,
				"due_date":    task.DueDate,
				"assigned_to": task.AssignedTo,
				"updated_at":  task.UpdatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
