package model

import (
	"time"

	"task-store.com/task-store/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `gorm:"not null" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null;index" json:"priority"`
	DueDate     *time.Time             `gorm:"index" json:"dueDate"`
	AssignedTo  *string                `gorm:"size:255;index" json:"assignedTo"`
	CreatedAt   time.Time              `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// Clone returns a copy that shares no pointers with t.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	return &c
}
