package comment

import (
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/comments/internal/store"
)

type fakeDoc struct {
	id     string
	fields map[string]any
}

func (d fakeDoc) ID() string            { return d.id }
func (d fakeDoc) Get(field string) any { return d.fields[field] }

type brokenTimestamp struct{}

func (brokenTimestamp) Time() (time.Time, error) { return time.Time{}, errors.New("corrupt") }

type fixedTimestamp time.Time

func (f fixedTimestamp) Time() (time.Time, error) { return time.Time(f), nil }

func TestFormatTimestamp(t *testing.T) {
	instant := time.Date(2026, 2, 7, 20, 20, 25, 524_000_000, time.UTC)
	paris := time.FixedZone("CET", 3600)
	var nilTime *time.Time

	tests := []struct {
		name string
		in   any
		want string // "" means null
	}{
		{name: "time", in: instant, want: "2026-02-07T20:20:25.524Z"},
		{name: "pointer", in: &instant, want: "2026-02-07T20:20:25.524Z"},
		{name: "nil pointer", in: nilTime, want: ""},
		{name: "converted to utc", in: time.Date(2026, 2, 7, 21, 20, 25, 524_000_000, paris), want: "2026-02-07T20:20:25.524Z"},
		{name: "sub-millisecond truncated", in: instant.Add(999 * time.Microsecond), want: "2026-02-07T20:20:25.524Z"},
		{name: "whole second keeps zeros", in: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), want: "2026-01-01T00:00:00.000Z"},
		{name: "store timestamp", in: fixedTimestamp(instant), want: "2026-02-07T20:20:25.524Z"},
		{name: "broken store timestamp", in: brokenTimestamp{}, want: ""},
		{name: "missing", in: nil, want: ""},
		{name: "zero time", in: time.Time{}, want: ""},
		{name: "year out of range", in: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), want: ""},
		{name: "string", in: "2026-02-07T20:20:25.524Z", want: ""},
		{name: "number", in: float64(1770495625524), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestamp(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Errorf("FormatTimestamp() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FormatTimestamp() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestFromDocuments(t *testing.T) {
	docs := []store.Document{
		fakeDoc{id: "abc123", fields: map[string]any{
			"handle":    "@stephen",
			"text":      "Posting from Postman",
			"createdAt": time.Date(2026, 2, 7, 20, 20, 25, 524_000_000, time.UTC),
		}},
		fakeDoc{id: "def456", fields: map[string]any{
			"handle":    "@trailrunner23",
			"text":      "Great run today!",
			"createdAt": brokenTimestamp{},
		}},
		fakeDoc{id: "ghi789", fields: map[string]any{
			"handle": "@nots",
			"text":   "no timestamp",
		}},
	}

	got := FromDocuments(docs)
	if len(got) != 3 {
		t.Fatalf("FromDocuments() returned %d comments, want 3", len(got))
	}

	if got[0].ID != "abc123" || got[0].Handle != "@stephen" || got[0].Text != "Posting from Postman" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[0].CreatedAt == nil || *got[0].CreatedAt != "2026-02-07T20:20:25.524Z" {
		t.Errorf("got[0].CreatedAt = %v", got[0].CreatedAt)
	}
	if got[1].ID != "def456" || got[1].CreatedAt != nil {
		t.Errorf("got[1] = %+v, want null createdAt", got[1])
	}
	if got[2].ID != "ghi789" || got[2].CreatedAt != nil {
		t.Errorf("got[2] = %+v, want null createdAt", got[2])
	}
}

func TestFromDocumentsEmpty(t *testing.T) {
	got := FromDocuments(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("FromDocuments(nil) = %v, want empty non-nil slice", got)
	}
}

func TestDraftFields(t *testing.T) {
	fields := Draft{Handle: "@trailrunner23", Text: "Great run today!"}.Fields()

	if fields[FieldHandle] != "@trailrunner23" || fields[FieldText] != "Great run today!" {
		t.Errorf("Fields() = %v", fields)
	}
	if !store.IsServerTimestamp(fields[FieldCreatedAt]) {
		t.Errorf("createdAt = %v, want ServerTimestamp", fields[FieldCreatedAt])
	}
	if len(fields) != 3 {
		t.Errorf("Fields() has %d entries, want 3", len(fields))
	}
}

func TestQuery(t *testing.T) {
	q := Query()
	if q.Collection != "comments" || q.OrderBy != "createdAt" || q.Direction != store.Descending || q.Limit != 50 {
		t.Errorf("Query() = %+v", q)
	}
}
