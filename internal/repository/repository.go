// Package repository persists the planner state. Storage is key-value:
// one JSON document holding every schedule plus the current selection
// pointer, written back on every mutation.
package repository

import (
	"context"
	"errors"

	"github.com/CS-UT/course-plan-sub000/internal/model"
)

// ErrStateNotFound signals that no planner state has been stored yet.
// Callers fall back to model.DefaultState.
var ErrStateNotFound = errors.New("planner state not found")

// StateRepository loads and saves the planner state document.
type StateRepository interface {
	Load(ctx context.Context) (model.PlannerState, error)
	Save(ctx context.Context, state model.PlannerState) error
	Close() error
}
