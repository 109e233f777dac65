package redis

const (
	// KeyPrefixDocument is the prefix for document keys
	KeyPrefixDocument = "comments:doc:"
	// KeyPrefixIndex is the prefix for the per-field sorted set indexes
	KeyPrefixIndex = "comments:idx:"
)

// DocumentKey returns the Redis key holding a document
func DocumentKey(collection, id string) string {
	return KeyPrefixDocument + collection + ":" + id
}

// IndexKey returns the sorted set ordering a collection by a server timestamp field
func IndexKey(collection, field string) string {
	return KeyPrefixIndex + collection + ":" + field
}
