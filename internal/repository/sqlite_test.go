package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

func openTestRepo(t *testing.T) *SQLiteStateRepository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "state", "planner.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoad_FreshDatabase(t *testing.T) {
	repo := openTestRepo(t)
	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("fresh database should report ErrStateNotFound, got %v", err)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	state := model.DefaultState()
	state.Schedules[0].Courses = append(state.Schedules[0].Courses, model.SelectedCourse{
		Course: model.Course{
			Code: "1001", Group: "1", Name: "Algebra", Units: 3,
			Gender: model.GenderMixed,
			Sessions: []model.Session{
				{DayOfWeek: model.Saturday, StartTime: "08:00", EndTime: "10:00"},
			},
		},
		Mode: model.ModeDefault,
	})
	state.Schedules = append(state.Schedules, model.Schedule{ID: 1, Courses: []model.SelectedCourse{}})
	state.CurrentScheduleID = 1

	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CurrentScheduleID != 1 || len(got.Schedules) != 2 {
		t.Errorf("loaded state wrong: current=%d schedules=%d", got.CurrentScheduleID, len(got.Schedules))
	}
	course := got.Schedules[0].Courses[0]
	if !course.Is("1001", "1") || course.Sessions[0].StartTime != "08:00" {
		t.Errorf("loaded course wrong: %+v", course)
	}
}

func TestSave_Overwrites(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, model.DefaultState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	updated := model.DefaultState()
	updated.Schedules = append(updated.Schedules, model.Schedule{ID: 1, Courses: []model.SelectedCourse{}})
	if err := repo.Save(ctx, updated); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Schedules) != 2 {
		t.Errorf("second save should win, got %d schedules", len(got.Schedules))
	}
}

func TestLoad_RejectsEmptyStateDocument(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, model.PlannerState{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.Load(ctx); err == nil || errors.Is(err, ErrStateNotFound) {
		t.Errorf("a document with no schedules is corrupt, got %v", err)
	}
}

func TestLoad_SurfacesCorruptRow(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO planner_state (key, value, updated_at) VALUES (?, ?, ?)`,
		stateKey, "{not json", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if _, err := repo.Load(ctx); err == nil || errors.Is(err, ErrStateNotFound) {
		t.Errorf("corrupt JSON must surface a decode error, got %v", err)
	}
}

func TestReopen_PersistsAcrossHandles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.db")
	ctx := context.Background()

	first, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := first.Save(ctx, model.DefaultState()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if _, err := second.Load(ctx); err != nil {
		t.Errorf("state should survive reopen, got %v", err)
	}
}
