// Implements the in-memory record collection with fetch fencing and the
// optimistic-until-next-fetch status mutation policy.

package records

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/notiondash/notiondash/internal/notion"
)

// Errors returned by status mutations.
var (
	// ErrRecordNotFound means the record is not in the loaded collection.
	ErrRecordNotFound = errors.New("record not found in collection")
	// ErrNotStatus means the named property is not a status property.
	ErrNotStatus = errors.New("property is not a status property")
	// ErrNoCycle means the observed domain has fewer than two options, so
	// cycling is a no-op.
	ErrNoCycle = errors.New("status domain too small to cycle")
)

// Collection holds the most recently fetched records for one database.
//
// Concurrent refetches are fenced: each fetch takes a monotonically
// increasing sequence before issuing its request, and a completed
// response is applied only when no newer fetch has started since. A slow
// stale response can therefore never clobber fresher data.
//
// Status mutations are applied optimistically and pushed to the gateway
// asynchronously by the caller. A failed push is not rolled back; the
// optimistic value stands until the next applied fetch overwrites it.
type Collection struct {
	mu    sync.Mutex
	pages []notion.Page
	seq   uint64 // latest issued fetch
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// BeginFetch registers a new fetch and returns its fencing sequence.
func (c *Collection) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Apply installs a fetch response. It returns false, leaving the
// collection untouched, when a newer fetch has been issued since seq.
//
// The slice is cloned so the collection owns its backing array: the
// caller keeps reading its own slice after Apply, and a concurrent
// status mutation must not write into it.
func (c *Collection) Apply(seq uint64, pages []notion.Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.pages = slices.Clone(pages)
	return true
}

// Pages returns a snapshot copy of the current records.
func (c *Collection) Pages() []notion.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notion.Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Len returns the number of loaded records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// CycleStatus advances the record's status property to the next observed
// option and applies it in place. On ErrNoCycle the current value is
// returned unchanged.
//
// The caller is responsible for pushing the returned value to the
// gateway; this method only performs the optimistic local update.
func (c *Collection) CycleStatus(recordID, property string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.pages {
		if c.pages[i].ID == recordID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrRecordNotFound
	}
	pv, ok := c.pages[idx].Properties[property]
	if !ok || pv.Type != "status" {
		return "", ErrNotStatus
	}

	current := ""
	if pv.Status != nil {
		current = pv.Status.Name
	}
	options := StatusOptions(c.pages, property)
	next, ok := NextStatus(options, current)
	if !ok {
		return current, ErrNoCycle
	}

	c.setStatusLocked(idx, property, next)
	return next, nil
}

// SetStatus applies an explicit status value optimistically. Unlike
// CycleStatus it does not consult the observed domain.
func (c *Collection) SetStatus(recordID, property, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.pages {
		if c.pages[i].ID == recordID {
			pv, ok := c.pages[i].Properties[property]
			if !ok || pv.Type != "status" {
				return ErrNotStatus
			}
			c.setStatusLocked(i, property, status)
			return nil
		}
	}
	return ErrRecordNotFound
}

// setStatusLocked writes the new status, reusing the option ID and color
// from any record already carrying that value so the display stays
// consistent.
//
// The record's Properties map is replaced copy-on-write rather than
// mutated: snapshots from Pages() and pre-Apply caller slices share the
// old map and must keep reading it without locking.
func (c *Collection) setStatusLocked(idx int, property, name string) {
	value := notion.SelectValue{Name: name}
	for i := range c.pages {
		pv, ok := c.pages[i].Properties[property]
		if ok && pv.Type == "status" && pv.Status != nil && pv.Status.Name == name {
			value = *pv.Status
			break
		}
	}
	props := maps.Clone(c.pages[idx].Properties)
	pv := props[property]
	pv.Status = &value
	props[property] = pv
	c.pages[idx].Properties = props
}
