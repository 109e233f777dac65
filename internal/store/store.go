// Package store defines the document store contract consumed by the API.
// Backends live in the memory, redis and postgres subpackages.
package store

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	// ErrUnorderedField is returned when a query orders on a field that the
	// backend did not stamp with ServerTimestamp.
	ErrUnorderedField = errors.New("order field is not a server timestamp")
	// ErrUnknownBackend is returned when the configured backend is not supported.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Direction is the sort order of a query.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	OrderBy    string
	Direction  Direction
	Limit      int // 0 = no limit
}

// Fields is the payload of a document. A value equal to ServerTimestamp is
// replaced by the store clock when the document is written.
type Fields map[string]any

// Document is a stored record as returned by a query.
type Document interface {
	ID() string
	// Get returns the value of a field, or nil when the field is absent.
	Get(field string) any
}

// Client is the document store used by the HTTP handlers.
type Client interface {
	Find(ctx context.Context, q Query) ([]Document, error)
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Timestamp is a stored instant that may fail to convert (corrupt or foreign data).
type Timestamp interface {
	Time() (time.Time, error)
}

type sentinel struct{ name string }

func (s *sentinel) String() string { return s.name }

// ServerTimestamp asks the store to stamp the field with its own clock at write time.
var ServerTimestamp any = &sentinel{name: "ServerTimestamp"}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	return v == ServerTimestamp
}

// ServerFields returns the names of the fields marked with ServerTimestamp.
func ServerFields(fields Fields) []string {
	var names []string
	for k, v := range fields {
		if IsServerTimestamp(v) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// PlainFields returns a copy of fields without the ServerTimestamp entries.
func PlainFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if !IsServerTimestamp(v) {
			out[k] = v
		}
	}
	return out
}
