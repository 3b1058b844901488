package roles

import (
	"fmt"
	"sync/atomic"
)

// state is an immutable point-in-time view of the catalog.
type state struct {
	defs    []Definition
	version uint64
}

// Catalog holds the working set of role definitions. Every mutation is a
// whole-set swap of a single pointer, so readers always see a consistent
// set without taking a lock. The zero value is an empty, ready catalog.
type Catalog struct {
	current atomic.Pointer[state]
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) load() *state {
	if s := c.current.Load(); s != nil {
		return s
	}
	return &state{}
}

// Replace substitutes the entire working set. A nil slice is a caller bug
// and is rejected; an empty slice clears the catalog.
func (c *Catalog) Replace(defs []Definition) error {
	if defs == nil {
		return fmt.Errorf("replace role catalog with nil set: %w", ErrInvalidArgument)
	}
	next := &state{defs: Clone(defs)}
	for {
		prev := c.current.Load()
		if prev != nil {
			next.version = prev.version + 1
		} else {
			next.version = 1
		}
		if c.current.CompareAndSwap(prev, next) {
			return nil
		}
	}
}

// Query returns copies of the roles whose phase equals phase, ignoring
// case, in catalog order.
func (c *Catalog) Query(phase string) []Definition {
	s := c.load()
	out := make([]Definition, 0, len(s.defs))
	for _, d := range s.defs {
		if d.MatchesPhase(phase) {
			out = append(out, d.clone())
		}
	}
	return out
}

// All returns copies of every role in catalog order.
func (c *Catalog) All() []Definition {
	s := c.load()
	out := Clone(s.defs)
	if out == nil {
		out = []Definition{}
	}
	return out
}

// Find returns the role with the given id.
func (c *Catalog) Find(id string) (Definition, bool) {
	for _, d := range c.load().defs {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Definition{}, false
}

// Len returns the number of roles in the current set.
func (c *Catalog) Len() int {
	return len(c.load().defs)
}

// Version increments on every successful Replace; zero means never loaded.
func (c *Catalog) Version() uint64 {
	return c.load().version
}
