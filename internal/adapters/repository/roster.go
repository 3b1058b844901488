package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
)

const rosterFile = "roster/players.json"

type rosterData struct {
	Players []model.Player
}

// RosterStore keeps the whole roster in one data file.
type RosterStore struct {
	store      *storage.Storage
	log        logger.Logger
	maxPlayers int
	mu         sync.RWMutex
}

var _ PlayerStore = (*RosterStore)(nil)

// NewRosterStore creates a roster rooted at dataDir.
func NewRosterStore(dataDir string, opts ...Option) (*RosterStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	o := newOptions(opts)
	return &RosterStore{
		store:      storage.New(dataDir, nil),
		log:        o.log,
		maxPlayers: o.maxPlayers,
	}, nil
}

func (s *RosterStore) read() ([]model.Player, error) {
	var rd rosterData
	if err := s.store.ReadDataFile(rosterFile, &rd); err != nil {
		if isNotExist(err) {
			return []model.Player{}, nil
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	if rd.Players == nil {
		return []model.Player{}, nil
	}
	return rd.Players, nil
}

func (s *RosterStore) write(players []model.Player) error {
	if err := s.store.SaveDataFile(rosterFile, rosterData{Players: players}); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

func indexOf(players []model.Player, name string) int {
	for i, p := range players {
		if p.Is(name) {
			return i
		}
	}
	return -1
}

// List returns the roster in insertion order.
func (s *RosterStore) List(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

// Get returns the named player.
func (s *RosterStore) Get(_ context.Context, name string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := s.read()
	if err != nil {
		return model.Player{}, err
	}
	i := indexOf(players, name)
	if i < 0 {
		return model.Player{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return players[i], nil
}

// Upsert replaces the player with the same name or appends a new one.
func (s *RosterStore) Upsert(ctx context.Context, p model.Player) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidPlayer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.read()
	if err != nil {
		return err
	}
	if i := indexOf(players, p.Name); i >= 0 {
		players[i] = p
	} else {
		if len(players) >= s.maxPlayers {
			return fmt.Errorf("%d players: %w", len(players), ErrRosterFull)
		}
		players = append(players, p)
	}
	if err := s.write(players); err != nil {
		return err
	}
	s.log.Debug(ctx, "player stored", logger.String("player", p.Name), logger.Int("roster", len(players)))
	return nil
}

// Delete removes the named player.
func (s *RosterStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.read()
	if err != nil {
		return err
	}
	i := indexOf(players, name)
	if i < 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	players = append(players[:i], players[i+1:]...)
	if err := s.write(players); err != nil {
		return err
	}
	s.log.Debug(ctx, "player deleted", logger.String("player", name))
	return nil
}
