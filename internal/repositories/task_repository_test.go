package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-store.com/task-store/internal/constants"
	apperrors "task-store.com/task-store/internal/errors"
	model "task-store.com/task-store/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Task{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func backends() map[string]func(t *testing.T) TaskRepository {
	return map[string]func(t *testing.T) TaskRepository{
		"memory": func(t *testing.T) TaskRepository { return NewMemoryTaskRepository() },
		"sqlite": func(t *testing.T) TaskRepository { return NewGormTaskRepository(setupTestDB(t)) },
	}
}

var baseTime = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTask(title string, status constants.TaskStatus, priority constants.TaskPriority) *model.Task {
	return &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: title + " description",
		Status:      status,
		Priority:    priority,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func mustCreate(t *testing.T, repo TaskRepository, task *model.Task) *model.Task {
	t.Helper()
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func equalTitles(got []model.Task, want ...string) bool {
	g := titles(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			task := newTask("A", constants.StatusPending, constants.PriorityLow)
			task.AssignedTo = strPtr("user-1")
			task.DueDate = timePtr(baseTime.Add(24 * time.Hour))
			mustCreate(t, repo, task)

			found, err := repo.FindByID(ctx, task.ID)
			if err != nil {
				t.Fatalf("failed to find task: %v", err)
			}
			if found.Title != "A" || found.Status != constants.StatusPending || found.Priority != constants.PriorityLow {
				t.Errorf("unexpected task %+v", found)
			}
			if found.AssignedTo == nil || *found.AssignedTo != "user-1" {
				t.Errorf("expected assignee user-1, got %v", found.AssignedTo)
			}
			if found.DueDate == nil || !found.DueDate.Equal(*task.DueDate) {
				t.Errorf("expected due date %v, got %v", task.DueDate, found.DueDate)
			}
			if !found.CreatedAt.Equal(baseTime) || !found.UpdatedAt.Equal(baseTime) {
				t.Errorf("expected timestamps %v, got %v / %v", baseTime, found.CreatedAt, found.UpdatedAt)
			}
		})
	}
}

func TestTaskRepository_FindMissing(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			_, err := newRepo(t).FindByID(context.Background(), "missing")
			if !errors.Is(err, apperrors.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound, got %v", err)
			}
		})
	}
}

func TestTaskRepository_ListFiltersAndOrder(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			a := newTask("A", constants.StatusPending, constants.PriorityLow)
			a.AssignedTo = strPtr("alice")
			b := newTask("B", constants.StatusCompleted, constants.PriorityHigh)
			b.AssignedTo = strPtr("bob")
			c := newTask("C", constants.StatusCompleted, constants.PriorityLow)
			c.AssignedTo = strPtr("alice")
			d := newTask("D", constants.StatusInProgress, constants.PriorityMedium)
			for _, task := range []*model.Task{a, b, c, d} {
				mustCreate(t, repo, task)
			}

			cases := []struct {
				name   string
				filter TaskFilter
				want   []string
			}{
				{"no filter", TaskFilter{}, []string{"A", "B", "C", "D"}},
				{"status", TaskFilter{Status: constants.StatusCompleted}, []string{"B", "C"}},
				{"priority", TaskFilter{Priority: constants.PriorityLow}, []string{"A", "C"}},
				{"assignee", TaskFilter{AssignedTo: "alice"}, []string{"A", "C"}},
				{"conjunction", TaskFilter{Status: constants.StatusCompleted, AssignedTo: "alice"}, []string{"C"}},
				{"exclude", TaskFilter{ExcludeStatus: constants.StatusCompleted}, []string{"A", "D"}},
				{"no match", TaskFilter{Status: "archived"}, []string{}},
			}

			for _, tc := range cases {
				tasks, err := repo.List(ctx, tc.filter)
				if err != nil {
					t.Fatalf("%s: failed to list: %v", tc.name, err)
				}
				if tasks == nil {
					t.Errorf("%s: expected empty slice, got nil", tc.name)
				}
				if !equalTitles(tasks, tc.want...) {
					t.Errorf("%s: expected %v, got %v", tc.name, tc.want, titles(tasks))
				}
			}
		})
	}
}

func TestTaskRepository_ListDueWindow(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			dayStart := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
			dayEnd := dayStart.Add(24 * time.Hour)

			yesterday := newTask("yesterday", constants.StatusPending, constants.PriorityLow)
			yesterday.DueDate = timePtr(dayStart.Add(-time.Nanosecond))
			midnight := newTask("midnight", constants.StatusPending, constants.PriorityLow)
			midnight.DueDate = timePtr(dayStart)
			evening := newTask("evening", constants.StatusPending, constants.PriorityLow)
			evening.DueDate = timePtr(dayStart.Add(23*time.Hour + 59*time.Minute))
			tomorrow := newTask("tomorrow", constants.StatusPending, constants.PriorityLow)
			tomorrow.DueDate = timePtr(dayEnd)
			undated := newTask("undated", constants.StatusPending, constants.PriorityLow)
			for _, task := range []*model.Task{yesterday, midnight, evening, tomorrow, undated} {
				mustCreate(t, repo, task)
			}

			tasks, err := repo.List(ctx, TaskFilter{DueFrom: &dayStart, DueBefore: &dayEnd})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if !equalTitles(tasks, "midnight", "evening") {
				t.Errorf("expected [midnight evening], got %v", titles(tasks))
			}

			tasks, err = repo.List(ctx, TaskFilter{DueBefore: &dayStart})
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			if !equalTitles(tasks, "yesterday") {
				t.Errorf("expected [yesterday], got %v", titles(tasks))
			}
		})
	}
}

func TestTaskRepository_Update(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			task := newTask("A", constants.StatusPending, constants.PriorityLow)
			task.AssignedTo = strPtr("alice")
			mustCreate(t, repo, task)

			later := baseTime.Add(time.Minute)
			updated, err := repo.Update(ctx, task.ID, func(m *model.Task) error {
				m.Status = constants.StatusCompleted
				m.AssignedTo = nil
				m.UpdatedAt = later
				return nil
			})
			if err != nil {
				t.Fatalf("failed to update: %v", err)
			}
			if updated.Status != constants.StatusCompleted || updated.AssignedTo != nil {
				t.Errorf("unexpected updated task %+v", updated)
			}

			found, _ := repo.FindByID(ctx, task.ID)
			if found.Status != constants.StatusCompleted {
				t.Errorf("expected stored status completed, got %s", found.Status)
			}
			if found.AssignedTo != nil {
				t.Errorf("expected assignee to be cleared, got %v", *found.AssignedTo)
			}
			if found.Title != "A" {
				t.Errorf("expected title to be unchanged, got %s", found.Title)
			}
			if !found.UpdatedAt.Equal(later) || !found.CreatedAt.Equal(baseTime) {
				t.Errorf("unexpected timestamps %v / %v", found.CreatedAt, found.UpdatedAt)
			}
		})
	}
}

func TestTaskRepository_UpdateAbortsOnMutateError(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			task := mustCreate(t, repo, newTask("A", constants.StatusPending, constants.PriorityLow))

			boom := errors.New("boom")
			_, err := repo.Update(ctx, task.ID, func(m *model.Task) error {
				m.Title = "changed"
				return boom
			})
			if !errors.Is(err, boom) {
				t.Errorf("expected mutate error, got %v", err)
			}

			found, _ := repo.FindByID(ctx, task.ID)
			if found.Title != "A" {
				t.Errorf("expected title to stay A, got %s", found.Title)
			}
		})
	}
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			_, err := newRepo(t).Update(context.Background(), "missing", func(*model.Task) error { return nil })
			if !errors.Is(err, apperrors.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound, got %v", err)
			}
		})
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	for name, newRepo := range backends() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			a := mustCreate(t, repo, newTask("A", constants.StatusPending, constants.PriorityLow))
			mustCreate(t, repo, newTask("B", constants.StatusPending, constants.PriorityLow))

			if err := repo.Delete(ctx, a.ID); err != nil {
				t.Fatalf("failed to delete: %v", err)
			}
			if _, err := repo.FindByID(ctx, a.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
			}
			if err := repo.Delete(ctx, a.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
			}

			tasks, _ := repo.List(ctx, TaskFilter{})
			if !equalTitles(tasks, "B") {
				t.Errorf("expected [B], got %v", titles(tasks))
			}
		})
	}
}

func TestMemoryTaskRepository_ReturnsSnapshots(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	task := newTask("A", constants.StatusPending, constants.PriorityLow)
	mustCreate(t, repo, task)
	task.Title = "mutated after create"

	found, _ := repo.FindByID(ctx, task.ID)
	found.Title = "mutated after find"

	tasks, _ := repo.List(ctx, TaskFilter{})
	tasks[0].Title = "mutated after list"

	again, _ := repo.FindByID(ctx, task.ID)
	if again.Title != "A" {
		t.Errorf("expected stored title A, got %s", again.Title)
	}
}

func TestMemoryTaskRepository_RejectsDuplicateID(t *testing.T) {
	repo := NewMemoryTaskRepository()
	task := newTask("A", constants.StatusPending, constants.PriorityLow)
	mustCreate(t, repo, task)

	if err := repo.Create(context.Background(), task); err == nil {
		t.Error("expected duplicate id to be rejected")
	}
}
