// Package dedupe tracks recently seen keys so repeated work can be skipped.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// defaultMaxSize bounds the tracker when no size is configured.
const defaultMaxSize = 10000

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord atomically reports whether key was already recorded and
	// records it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Forget removes key so it may be recorded again.
	Forget(ctx context.Context, key string)

	Size() int
}

// Key scopes a project id to one batch.
func Key(batchID, projectID string) string {
	return batchID + "/" + projectID
}

// inMemoryDeduper keeps keys in insertion order and evicts the oldest when
// full. A non-positive maxSize disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	seen    map[string]*list.Element
}

// NewInMemoryDeduper creates an in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.order = list.New()
	d.seen = make(map[string]*list.Element)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(string))
	}
	d.seen[key] = d.order.PushBack(key)
	return false
}

func (d *inMemoryDeduper) Forget(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		d.order.Remove(el)
		delete(d.seen, key)
	}
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.order.Len()
}
