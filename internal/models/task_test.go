package model

import (
	"testing"
	"time"
)

func TestTask_CloneDoesNotShareOptionalFields(t *testing.T) {
	due := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	assignee := "user-1"
	orig := &Task{ID: "a", DueDate: &due, AssignedTo: &assignee}

	c := orig.Clone()
	*c.DueDate = c.DueDate.Add(time.Hour)
	*c.AssignedTo = "user-2"

	if !orig.DueDate.Equal(due) {
		t.Errorf("expected original due date %v, got %v", due, *orig.DueDate)
	}
	if *orig.AssignedTo != "user-1" {
		t.Errorf("expected original assignee user-1, got %s", *orig.AssignedTo)
	}
}

func TestTask_CloneNilOptionalFields(t *testing.T) {
	c := (&Task{ID: "a"}).Clone()
	if c.DueDate != nil || c.AssignedTo != nil {
		t.Error("expected nil optional fields to stay nil")
	}
}
