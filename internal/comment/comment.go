// Package comment holds the comment rules: what a valid submission is, how
// it is persisted and how a stored document is rendered on the wire.
package comment

import "github.com/MrSnakeDoc/comments/internal/store"

const (
	// Collection is the store collection holding comments.
	Collection = "comments"
	// ListLimit is the maximum number of comments returned by a listing.
	ListLimit = 50

	FieldHandle    = "handle"
	FieldText      = "text"
	FieldCreatedAt = "createdAt"
)

// Comment is the wire form of a stored comment.
type Comment struct {
	ID        string  `json:"id"`
	Handle    string  `json:"handle"`
	Text      string  `json:"text"`
	CreatedAt *string `json:"createdAt"` // ISO-8601 UTC with milliseconds, or null
}

// Draft is an accepted submission, ready to be written.
type Draft struct {
	Handle string
	Text   string
}

// Fields returns the document to insert. createdAt is left to the store clock.
func (d Draft) Fields() store.Fields {
	return store.Fields{
		FieldHandle:    d.Handle,
		FieldText:      d.Text,
		FieldCreatedAt: store.ServerTimestamp,
	}
}

// Query returns the listing query: newest first, capped at ListLimit.
func Query() store.Query {
	return store.Query{
		Collection: Collection,
		OrderBy:    FieldCreatedAt,
		Direction:  store.Descending,
		Limit:      ListLimit,
	}
}
