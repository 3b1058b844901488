package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/scout/internal/domain/roles"
	"github.com/okian/scout/pkg/logger"
)

// PGRoleStore keeps the role set in the Postgres roles table.
type PGRoleStore struct {
	DB           *sql.DB
	baselinePath string
	log          logger.Logger
}

// NewPGRoleStore wraps an open database. Migrations are run separately.
func NewPGRoleStore(db *sql.DB, baselinePath string, opts ...Option) *PGRoleStore {
	o := newOptions(opts)
	return &PGRoleStore{DB: db, baselinePath: baselinePath, log: o.log}
}

// Init seeds the table from the baseline when it is empty.
func (r *PGRoleStore) Init(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM roles`).Scan(&n); err != nil {
		return fmt.Errorf("count roles: %w", err)
	}
	if n > 0 {
		return nil
	}
	defs, err := LoadBaseline(r.baselinePath)
	if errors.Is(err, ErrBaselineMissing) {
		r.log.Warn(ctx, "no baseline roles; starting empty", logger.String("path", r.baselinePath))
		return nil
	}
	if err != nil {
		return err
	}
	if err := r.Save(ctx, defs); err != nil {
		return err
	}
	r.log.Info(ctx, "seeded roles table from baseline", logger.Int("roles", len(defs)))
	return nil
}

// Load returns every stored role ordered by phase, category and name.
func (r *PGRoleStore) Load(ctx context.Context) ([]roles.Definition, error) {
	const query = `
SELECT id, name, category, phase, weights
FROM roles
ORDER BY phase, category, name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	defs := []roles.Definition{}
	for rows.Next() {
		var d roles.Definition
		var weights []byte
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.Phase, &weights); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		if len(weights) > 0 {
			if err := json.Unmarshal(weights, &d.Weights); err != nil {
				return nil, fmt.Errorf("decode weights for %s: %w", d.ID, err)
			}
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return defs, nil
}

// Save replaces the whole table in one transaction.
func (r *PGRoleStore) Save(ctx context.Context, defs []roles.Definition) error {
	const insert = `
INSERT INTO roles (id, name, category, phase, weights, updated_at)
VALUES ($1, $2, $3, $4, $5::jsonb, now())`

	defs = withIDs(defs)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roles`); err != nil {
		return fmt.Errorf("clear roles: %w", err)
	}
	for _, d := range defs {
		weights, err := marshalWeights(d.Weights)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, d.ID, d.Name, d.Category, d.Phase, weights); err != nil {
			return fmt.Errorf("insert role %s: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ResetToBaseline replaces the table with the baseline file.
func (r *PGRoleStore) ResetToBaseline(ctx context.Context) ([]roles.Definition, error) {
	defs, err := LoadBaseline(r.baselinePath)
	if err != nil {
		return nil, err
	}
	defs = withIDs(defs)
	if err := r.Save(ctx, defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func marshalWeights(w map[string]float64) (string, error) {
	if w == nil {
		return "{}", nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode weights: %w", err)
	}
	return string(b), nil
}
