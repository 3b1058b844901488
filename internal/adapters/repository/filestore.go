package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/okian/scout/internal/domain/roles"
	"github.com/okian/scout/pkg/logger"
)

const localRolesFile = "roles/local.json"

type roleFile struct {
	Roles []roles.Definition
}

// FileRoleStore keeps the user's role set in a local data file and falls back
// to the baseline JSON for initialisation and resets.
type FileRoleStore struct {
	baselinePath string
	store        *storage.Storage
	log          logger.Logger
	mu           sync.Mutex
}

// NewFileRoleStore creates a store rooted at dataDir.
func NewFileRoleStore(baselinePath, dataDir string, opts ...Option) (*FileRoleStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	o := newOptions(opts)
	return &FileRoleStore{
		baselinePath: baselinePath,
		store:        storage.New(dataDir, nil),
		log:          o.log,
	}, nil
}

// Init copies the baseline into the local file when no local copy exists.
// A missing baseline leaves the store empty.
func (s *FileRoleStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rf roleFile
	err := s.store.ReadDataFile(localRolesFile, &rf)
	if err == nil {
		return nil
	}
	if !isNotExist(err) {
		s.log.Warn(ctx, "local roles unreadable; keeping file untouched", logger.Error(err))
		return nil
	}

	defs, err := LoadBaseline(s.baselinePath)
	if errors.Is(err, ErrBaselineMissing) {
		s.log.Warn(ctx, "no baseline roles; starting empty", logger.String("path", s.baselinePath))
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.SaveDataFile(localRolesFile, roleFile{Roles: withIDs(defs)}); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	s.log.Info(ctx, "seeded local roles from baseline", logger.Int("roles", len(defs)))
	return nil
}

// Load returns the local role set. Missing or unreadable data yields an empty
// set so the engine keeps working.
func (s *FileRoleStore) Load(ctx context.Context) ([]roles.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rf roleFile
	if err := s.store.ReadDataFile(localRolesFile, &rf); err != nil {
		if !isNotExist(err) {
			s.log.Warn(ctx, "local roles unreadable; using empty set", logger.Error(err))
		}
		return []roles.Definition{}, nil
	}
	if rf.Roles == nil {
		return []roles.Definition{}, nil
	}
	return rf.Roles, nil
}

// Save replaces the local role set.
func (s *FileRoleStore) Save(_ context.Context, defs []roles.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveDataFile(localRolesFile, roleFile{Roles: withIDs(defs)}); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// ResetToBaseline overwrites the local set with the baseline.
func (s *FileRoleStore) ResetToBaseline(ctx context.Context) ([]roles.Definition, error) {
	defs, err := LoadBaseline(s.baselinePath)
	if err != nil {
		return nil, err
	}
	defs = withIDs(defs)
	if err := s.Save(ctx, defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)
}
