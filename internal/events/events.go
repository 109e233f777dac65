// Package events publishes notifications about stored comments.
package events

import "context"

// TopicCommentCreated is published after a comment is persisted.
const TopicCommentCreated = "comments.comment.created"

// CommentCreated is the payload of TopicCommentCreated.
type CommentCreated struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Text   string `json:"text"`
}

// Publisher sends events to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
