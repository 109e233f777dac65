package comment

import (
	"time"

	"github.com/MrSnakeDoc/comments/internal/store"
)

// TimeLayout renders instants the way clients expect: UTC, millisecond
// precision, Z designator.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FromDocument maps a stored document to its wire form. It never fails: a
// missing or unconvertible createdAt becomes null.
func FromDocument(doc store.Document) Comment {
	return Comment{
		ID:        doc.ID(),
		Handle:    Coerce(doc.Get(FieldHandle)),
		Text:      Coerce(doc.Get(FieldText)),
		CreatedAt: FormatTimestamp(doc.Get(FieldCreatedAt)),
	}
}

// FromDocuments maps documents preserving their order.
func FromDocuments(docs []store.Document) []Comment {
	out := make([]Comment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromDocument(doc))
	}
	return out
}

// FormatTimestamp returns the ISO-8601 form of a stored timestamp, or nil.
func FormatTimestamp(v any) *string {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case *time.Time:
		if val == nil {
			return nil
		}
		t = *val
	case store.Timestamp:
		converted, err := val.Time()
		if err != nil {
			return nil
		}
		t = converted
	default:
		return nil
	}

	t = t.UTC()
	// Zero value and years that do not fit four digits are not calendar
	// instants a client can parse.
	if t.IsZero() || t.Year() < 0 || t.Year() > 9999 {
		return nil
	}

	s := t.Format(TimeLayout)
	return &s
}
