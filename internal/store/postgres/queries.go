package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/MrSnakeDoc/comments/internal/idgen"
	"github.com/MrSnakeDoc/comments/internal/store"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// orderClauses maps a direction to a fixed ORDER BY clause.
var orderClauses = map[store.Direction]string{
	store.Ascending:  "server_time ASC, seq ASC",
	store.Descending: "server_time DESC, seq DESC",
}

type document struct {
	id         string
	fields     map[string]any
	stamped    map[string]bool
	serverTime time.Time
}

func (d *document) ID() string { return d.id }

func (d *document) Get(field string) any {
	if d.stamped[field] {
		return d.serverTime
	}
	if v, ok := d.fields[field]; ok {
		return v
	}
	return nil
}

func queryAdd(ctx context.Context, db executor, collection string, fields store.Fields) (string, error) {
	id, err := idgen.Generate()
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}

	data, err := json.Marshal(store.PlainFields(fields))
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}

	stamped := store.ServerFields(fields)
	if stamped == nil {
		stamped = []string{}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO documents (id, collection, fields, server_fields)
		VALUES ($1, $2, $3, $4)`,
		id, collection, data, pq.Array(stamped),
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}

	return id, nil
}

func queryFind(ctx context.Context, db executor, q store.Query) ([]store.Document, error) {
	if q.OrderBy == "" {
		return nil, store.ErrUnorderedField
	}

	order, ok := orderClauses[q.Direction]
	if !ok {
		return nil, fmt.Errorf("unsupported direction %d", q.Direction)
	}

	var limit sql.NullInt64
	if q.Limit > 0 {
		limit = sql.NullInt64{Int64: int64(q.Limit), Valid: true}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, fields, server_fields, server_time
		FROM documents
		WHERE collection = $1 AND $2 = ANY(server_fields)
		ORDER BY `+order+`
		LIMIT $3`,
		q.Collection, q.OrderBy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if docs == nil {
		docs = []store.Document{}
	}
	return docs, nil
}

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanDocument(row scannable) (*document, error) {
	var (
		doc     document
		raw     []byte
		stamped []string
	)

	if err := row.Scan(&doc.id, &raw, pq.Array(&stamped), &doc.serverTime); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if err := json.Unmarshal(raw, &doc.fields); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", doc.id, err)
	}

	doc.stamped = make(map[string]bool, len(stamped))
	for _, f := range stamped {
		doc.stamped[f] = true
	}
	doc.serverTime = doc.serverTime.UTC()

	return &doc, nil
}
