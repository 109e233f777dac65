package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/comments/internal/idgen"
	"github.com/MrSnakeDoc/comments/internal/store"
)

// Store is a document store over Redis. Documents are JSON strings; every
// ServerTimestamp field is mirrored in a sorted set scored by epoch millis,
// which is what ordered queries read.
type Store struct {
	client *redis.Client
}

var _ store.Client = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// record is the persisted form of a document.
type record struct {
	Fields     map[string]any             `json:"fields"`
	Timestamps map[string]json.RawMessage `json:"timestamps,omitempty"` // epoch millis
}

type document struct {
	id  string
	rec record
}

func (d *document) ID() string { return d.id }

func (d *document) Get(field string) any {
	if raw, ok := d.rec.Timestamps[field]; ok {
		return millis(raw)
	}
	if v, ok := d.rec.Fields[field]; ok {
		return v
	}
	return nil
}

// millis is a stored epoch-millisecond timestamp, decoded lazily.
type millis json.RawMessage

func (m millis) Time() (time.Time, error) {
	ms, err := strconv.ParseInt(string(m), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", string(m), err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Add stores a document stamped with the Redis server clock
func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	id, err := idgen.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate document id: %w", err)
	}

	now, err := s.client.Time(ctx).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read server time: %w", err)
	}
	ms := now.UnixMilli()

	stamped := store.ServerFields(fields)
	rec := record{
		Fields:     store.PlainFields(fields),
		Timestamps: make(map[string]json.RawMessage, len(stamped)),
	}
	for _, field := range stamped {
		rec.Timestamps[field] = json.RawMessage(strconv.FormatInt(ms, 10))
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, DocumentKey(collection, id), data, 0)
	for _, field := range stamped {
		pipe.ZAdd(ctx, IndexKey(collection, field), redis.Z{Score: float64(ms), Member: id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save document: %w", err)
	}

	return id, nil
}

// Find reads documents through the sorted set index of q.OrderBy
func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	if q.OrderBy == "" {
		return nil, store.ErrUnorderedField
	}
	return findIndexed(ctx, s, q)
}

// indexReader is the subset of Redis access used by findIndexed.
type indexReader interface {
	rangeIDs(ctx context.Context, key string, start, stop int64, desc bool) ([]string, error)
	getDocuments(ctx context.Context, keys []string) ([]any, error)
	pruneIndex(ctx context.Context, key string, ids []string) error
}

// findIndexed pages through the index until q.Limit documents are collected
// or the index is exhausted. Index members whose document is gone are removed
// from the index and do not count against the limit.
func findIndexed(ctx context.Context, r indexReader, q store.Query) ([]store.Document, error) {
	key := IndexKey(q.Collection, q.OrderBy)
	desc := q.Direction == store.Descending

	docs := make([]store.Document, 0, max(q.Limit, 0))
	seen := make(map[string]bool)
	var offset int64

	for {
		stop := int64(-1)
		if q.Limit > 0 {
			stop = offset + int64(q.Limit-len(docs)) - 1
		}

		ids, err := r.rangeIDs(ctx, key, offset, stop, desc)
		if err != nil {
			return nil, fmt.Errorf("failed to read index %s: %w", key, err)
		}
		if len(ids) == 0 {
			return docs, nil
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = DocumentKey(q.Collection, id)
		}
		values, err := r.getDocuments(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("failed to get documents: %w", err)
		}

		var dangling []string
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				dangling = append(dangling, ids[i])
				continue
			}
			if seen[ids[i]] {
				continue
			}
			seen[ids[i]] = true
			doc, err := decodeDocument(ids[i], []byte(raw))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}

		if len(dangling) > 0 {
			if err := r.pruneIndex(ctx, key, dangling); err != nil {
				return nil, fmt.Errorf("failed to prune index %s: %w", key, err)
			}
		}

		if stop < 0 || len(docs) >= q.Limit || int64(len(ids)) < stop-offset+1 {
			return docs, nil
		}
		// Pruned members no longer occupy ranks.
		offset += int64(len(ids) - len(dangling))
	}
}

func (s *Store) rangeIDs(ctx context.Context, key string, start, stop int64, desc bool) ([]string, error) {
	if desc {
		return s.client.ZRevRange(ctx, key, start, stop).Result()
	}
	return s.client.ZRange(ctx, key, start, stop).Result()
}

func (s *Store) getDocuments(ctx context.Context, keys []string) ([]any, error) {
	return s.client.MGet(ctx, keys...).Result()
}

func (s *Store) pruneIndex(ctx context.Context, key string, ids []string) error {
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	return s.client.ZRem(ctx, key, members...).Err()
}

func decodeDocument(id string, data []byte) (*document, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	return &document{id: id, rec: rec}, nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
