package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/roles"
)

func notConfigured(store string) error {
	return fmt.Errorf("%s store: %w", store, ErrNotConfigured)
}

// Tags returns every tag.
func (s *Service) Tags(ctx context.Context) ([]model.Tag, error) {
	if s.tags == nil {
		return nil, notConfigured("tag")
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// SaveTag creates t, or replaces the tag with its ID.
func (s *Service) SaveTag(ctx context.Context, t model.Tag) (model.Tag, error) {
	if s.tags == nil {
		return t, notConfigured("tag")
	}
	saved, err := s.tags.Save(ctx, t)
	if err != nil {
		return t, translate(err)
	}
	return saved, nil
}

// DeleteTag removes a tag no player carries any more.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	if s.tags == nil {
		return notConfigured("tag")
	}
	if s.players != nil {
		players, err := s.players.List(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		for _, p := range players {
			if p.HasTag(id) {
				return fmt.Errorf("tag %q is used by %s: %w", id, p.Name, ErrConflict)
			}
		}
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// Positions returns every position.
func (s *Service) Positions(ctx context.Context) ([]model.Position, error) {
	if s.positions == nil {
		return nil, notConfigured("position")
	}
	positions, err := s.positions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// Position returns one position by ID.
func (s *Service) Position(ctx context.Context, id string) (model.Position, error) {
	if s.positions == nil {
		return model.Position{}, notConfigured("position")
	}
	p, err := s.positions.Get(ctx, id)
	if err != nil {
		return model.Position{}, translate(err)
	}
	return p, nil
}

// SavePosition creates p, or replaces the position with its ID.
func (s *Service) SavePosition(ctx context.Context, p model.Position) (model.Position, error) {
	if s.positions == nil {
		return p, notConfigured("position")
	}
	saved, err := s.positions.Save(ctx, p)
	if err != nil {
		return p, translate(err)
	}
	return saved, nil
}

// DeletePosition removes a position. Players still pointing at it keep the
// ID and report no position.
func (s *Service) DeletePosition(ctx context.Context, id string) error {
	if s.positions == nil {
		return notConfigured("position")
	}
	if err := s.positions.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// Tactics returns every tactic.
func (s *Service) Tactics(ctx context.Context) ([]model.Tactic, error) {
	if s.tactics == nil {
		return nil, notConfigured("tactic")
	}
	tactics, err := s.tactics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tactics: %w", err)
	}
	return tactics, nil
}

// Tactic returns one tactic by ID.
func (s *Service) Tactic(ctx context.Context, id string) (model.Tactic, error) {
	if s.tactics == nil {
		return model.Tactic{}, notConfigured("tactic")
	}
	t, err := s.tactics.Get(ctx, id)
	if err != nil {
		return model.Tactic{}, translate(err)
	}
	return t, nil
}

// SaveTactic creates t, or replaces the tactic with its ID. Every role ID
// must name a catalog role of the matching phase.
func (s *Service) SaveTactic(ctx context.Context, t model.Tactic) (model.Tactic, error) {
	if s.tactics == nil {
		return t, notConfigured("tactic")
	}
	if err := s.checkTacticRoles(t.InPossessionRoleIDs, roles.PhaseInPossession); err != nil {
		return t, err
	}
	if err := s.checkTacticRoles(t.OutPossessionRoleIDs, roles.PhaseOutPossession); err != nil {
		return t, err
	}
	saved, err := s.tactics.Save(ctx, t)
	if err != nil {
		return t, translate(err)
	}
	return saved, nil
}

func (s *Service) checkTacticRoles(ids []string, phase string) error {
	for _, id := range ids {
		def, ok := s.catalog.Find(id)
		if !ok {
			return fmt.Errorf("tactic role %q: unknown: %w", id, ErrInvalidArgument)
		}
		if def.Phase != phase {
			return fmt.Errorf("tactic role %q: not a %s role: %w", id, phase, ErrInvalidArgument)
		}
	}
	return nil
}

// DeleteTactic removes a tactic.
func (s *Service) DeleteTactic(ctx context.Context, id string) error {
	if s.tactics == nil {
		return notConfigured("tactic")
	}
	if err := s.tactics.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// playerTags resolves p's tag IDs, sorted by name. Unknown IDs are skipped.
func (s *Service) playerTags(ctx context.Context, p model.Player) ([]model.Tag, error) {
	out := []model.Tag{}
	if s.tags == nil || len(p.TagIDs) == 0 {
		return out, nil
	}
	all, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for _, t := range all {
		if p.HasTag(t.ID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// playerPosition resolves p's position, or nil when it has none or the ID
// dangles.
func (s *Service) playerPosition(ctx context.Context, p model.Player) (*model.Position, error) {
	if s.positions == nil || p.PositionID == "" {
		return nil, nil
	}
	pos, err := s.positions.Get(ctx, p.PositionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("position %q: %w", p.PositionID, err)
	}
	return &pos, nil
}
