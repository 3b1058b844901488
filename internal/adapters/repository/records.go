package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/google/uuid"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
)

const (
	tagsFile      = "squad/tags.json"
	positionsFile = "squad/positions.json"
	tacticsFile   = "squad/tactics.json"
)

type recordFile[T any] struct {
	Records []T
}

// collection keeps one kind of record in a single data file, keyed by an ID
// field that id exposes.
type collection[T any] struct {
	store *storage.Storage
	file  string
	kind  string
	id    func(*T) *string
	log   logger.Logger
	mu    sync.RWMutex
}

func newCollection[T any](dataDir, file, kind string, id func(*T) *string, opts []Option) (*collection[T], error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	o := newOptions(opts)
	return &collection[T]{
		store: storage.New(dataDir, nil),
		file:  file,
		kind:  kind,
		id:    id,
		log:   o.log,
	}, nil
}

func (c *collection[T]) read() ([]T, error) {
	var rf recordFile[T]
	if err := c.store.ReadDataFile(c.file, &rf); err != nil {
		if isNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	if rf.Records == nil {
		return []T{}, nil
	}
	return rf.Records, nil
}

func (c *collection[T]) indexOf(records []T, id string) int {
	for i := range records {
		if *c.id(&records[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) list() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	records, err := c.read()
	if err != nil {
		return zero, err
	}
	i := c.indexOf(records, id)
	if i < 0 {
		return zero, fmt.Errorf("%s %q: %w", c.kind, id, ErrNotFound)
	}
	return records[i], nil
}

// save replaces the record with the same ID or appends it. A blank ID is
// replaced with a fresh UUID.
func (c *collection[T]) save(ctx context.Context, rec T) (T, error) {
	id := c.id(&rec)
	*id = strings.TrimSpace(*id)
	if *id == "" {
		*id = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return rec, err
	}
	if i := c.indexOf(records, *id); i >= 0 {
		records[i] = rec
	} else {
		records = append(records, rec)
	}
	if err := c.store.SaveDataFile(c.file, recordFile[T]{Records: records}); err != nil {
		return rec, fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	c.log.Debug(ctx, c.kind+" stored", logger.String("id", *id))
	return rec, nil
}

func (c *collection[T]) delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	i := c.indexOf(records, id)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", c.kind, id, ErrNotFound)
	}
	records = append(records[:i], records[i+1:]...)
	if err := c.store.SaveDataFile(c.file, recordFile[T]{Records: records}); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	c.log.Debug(ctx, c.kind+" deleted", logger.String("id", id))
	return nil
}

func requireName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%s: empty name: %w", kind, ErrInvalidRecord)
	}
	return name, nil
}

// FileTagStore keeps tags in one data file.
type FileTagStore struct{ c *collection[model.Tag] }

var _ TagStore = (*FileTagStore)(nil)

// NewFileTagStore creates a tag store rooted at dataDir.
func NewFileTagStore(dataDir string, opts ...Option) (*FileTagStore, error) {
	c, err := newCollection(dataDir, tagsFile, "tag", func(t *model.Tag) *string { return &t.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &FileTagStore{c: c}, nil
}

// List returns the tags in insertion order.
func (s *FileTagStore) List(context.Context) ([]model.Tag, error) { return s.c.list() }

// Save validates and stores t, returning it with its ID.
func (s *FileTagStore) Save(ctx context.Context, t model.Tag) (model.Tag, error) {
	name, err := requireName("tag", t.Name)
	if err != nil {
		return t, err
	}
	t.Name = name
	return s.c.save(ctx, t)
}

// Delete removes the tag with id.
func (s *FileTagStore) Delete(ctx context.Context, id string) error { return s.c.delete(ctx, id) }

// FilePositionStore keeps positions in one data file.
type FilePositionStore struct{ c *collection[model.Position] }

var _ PositionStore = (*FilePositionStore)(nil)

// NewFilePositionStore creates a position store rooted at dataDir.
func NewFilePositionStore(dataDir string, opts ...Option) (*FilePositionStore, error) {
	c, err := newCollection(dataDir, positionsFile, "position", func(p *model.Position) *string { return &p.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &FilePositionStore{c: c}, nil
}

// List returns the positions in insertion order.
func (s *FilePositionStore) List(context.Context) ([]model.Position, error) { return s.c.list() }

// Get returns the position with id.
func (s *FilePositionStore) Get(_ context.Context, id string) (model.Position, error) {
	return s.c.get(id)
}

// Save validates and stores p. A blank colour becomes DefaultPositionColor.
func (s *FilePositionStore) Save(ctx context.Context, p model.Position) (model.Position, error) {
	name, err := requireName("position", p.Name)
	if err != nil {
		return p, err
	}
	p.Name = name
	p.Code = strings.TrimSpace(p.Code)
	if strings.TrimSpace(p.ColorHex) == "" {
		p.ColorHex = model.DefaultPositionColor
	}
	return s.c.save(ctx, p)
}

// Delete removes the position with id.
func (s *FilePositionStore) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, id)
}

// FileTacticStore keeps tactics in one data file.
type FileTacticStore struct{ c *collection[model.Tactic] }

var _ TacticStore = (*FileTacticStore)(nil)

// NewFileTacticStore creates a tactic store rooted at dataDir.
func NewFileTacticStore(dataDir string, opts ...Option) (*FileTacticStore, error) {
	c, err := newCollection(dataDir, tacticsFile, "tactic", func(t *model.Tactic) *string { return &t.ID }, opts)
	if err != nil {
		return nil, err
	}
	return &FileTacticStore{c: c}, nil
}

// List returns the tactics in insertion order.
func (s *FileTacticStore) List(context.Context) ([]model.Tactic, error) { return s.c.list() }

// Get returns the tactic with id.
func (s *FileTacticStore) Get(_ context.Context, id string) (model.Tactic, error) {
	return s.c.get(id)
}

// Save validates and stores t. Missing role lists are stored empty.
func (s *FileTacticStore) Save(ctx context.Context, t model.Tactic) (model.Tactic, error) {
	name, err := requireName("tactic", t.Name)
	if err != nil {
		return t, err
	}
	t.Name = name
	if t.InPossessionRoleIDs == nil {
		t.InPossessionRoleIDs = []string{}
	}
	if t.OutPossessionRoleIDs == nil {
		t.OutPossessionRoleIDs = []string{}
	}
	return s.c.save(ctx, t)
}

// Delete removes the tactic with id.
func (s *FileTacticStore) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, id)
}
