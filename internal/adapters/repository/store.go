// Package repository persists role definitions, the player roster and the
// tags, positions and tactics that annotate it.
package repository

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/roles"
)

// RoleStore holds the user-editable role set and its factory baseline.
type RoleStore interface {
	// Init prepares the store, seeding it from the baseline when empty.
	Init(ctx context.Context) error
	// Load returns the current role set. A missing set is empty, not an error.
	Load(ctx context.Context) ([]roles.Definition, error)
	// Save replaces the whole role set.
	Save(ctx context.Context, defs []roles.Definition) error
	// ResetToBaseline overwrites the role set with the baseline and returns it.
	ResetToBaseline(ctx context.Context) ([]roles.Definition, error)
}

// PlayerStore holds the roster. Names compare case-insensitively.
type PlayerStore interface {
	List(ctx context.Context) ([]model.Player, error)
	// Get returns ErrNotFound for unknown names.
	Get(ctx context.Context, name string) (model.Player, error)
	Upsert(ctx context.Context, p model.Player) error
	// Delete returns ErrNotFound for unknown names.
	Delete(ctx context.Context, name string) error
}

// TagStore holds roster tags. Save assigns an ID when the tag has none.
type TagStore interface {
	List(ctx context.Context) ([]model.Tag, error)
	Save(ctx context.Context, t model.Tag) (model.Tag, error)
	// Delete returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error
}

// PositionStore holds the pitch positions players can be assigned.
type PositionStore interface {
	List(ctx context.Context) ([]model.Position, error)
	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (model.Position, error)
	Save(ctx context.Context, p model.Position) (model.Position, error)
	Delete(ctx context.Context, id string) error
}

// TacticStore holds saved tactics.
type TacticStore interface {
	List(ctx context.Context) ([]model.Tactic, error)
	Get(ctx context.Context, id string) (model.Tactic, error)
	Save(ctx context.Context, t model.Tactic) (model.Tactic, error)
	Delete(ctx context.Context, id string) error
}
