// Package memory is an in-process document store. It backs local development
// and the handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/comments/internal/idgen"
	"github.com/MrSnakeDoc/comments/internal/store"
)

// Store keeps collections in memory. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]*document // collection -> ID -> document
	seq         uint64                          // insertion counter, breaks timestamp ties
	now         func() time.Time
}

type document struct {
	id      string
	seq     uint64
	fields  store.Fields
	stamped map[string]bool // fields assigned by ServerTimestamp
}

func (d *document) ID() string { return d.id }

func (d *document) Get(field string) any { return d.fields[field] }

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for ServerTimestamp fields.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

var _ store.Client = (*Store)(nil)

// NewStore creates an empty memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]*document),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores a new document and returns its generated id.
func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id, err := idgen.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate document id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	doc := &document{
		id:      id,
		fields:  make(store.Fields, len(fields)),
		stamped: make(map[string]bool),
	}
	for k, v := range fields {
		if store.IsServerTimestamp(v) {
			doc.fields[k] = now
			doc.stamped[k] = true
			continue
		}
		doc.fields[k] = v
	}

	s.seq++
	doc.seq = s.seq

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]*document)
		s.collections[collection] = coll
	}
	coll[id] = doc

	return id, nil
}

// Find returns the documents of a collection. When q.OrderBy is set, only
// documents stamped on that field are returned, sorted by it.
func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.collections[q.Collection]
	docs := make([]*document, 0, len(coll))
	for _, doc := range coll {
		if q.OrderBy != "" && !doc.stamped[q.OrderBy] {
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		less := docs[i].seq < docs[j].seq
		if q.OrderBy != "" {
			ti := docs[i].fields[q.OrderBy].(time.Time)
			tj := docs[j].fields[q.OrderBy].(time.Time)
			if !ti.Equal(tj) {
				less = ti.Before(tj)
			}
		}
		if q.Direction == store.Descending {
			return !less
		}
		return less
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}

	out := make([]store.Document, len(docs))
	for i, doc := range docs {
		out[i] = doc
	}
	return out, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close is a no-op.
func (s *Store) Close() error { return nil }
