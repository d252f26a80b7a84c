package events

import (
	"context"
	"sync"
	"time"
)

// Event types published by the services.
const (
	PostCreated    = "post.created"
	CommentCreated = "comment.created"
	CommentDeleted = "comment.deleted"
)

// Event is a domain event serialized as JSON.
type Event struct {
	Type       string    `json:"type"`
	PostID     int       `json:"post_id"`
	CommentID  int       `json:"comment_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type nopPublisher struct{}

// Nop returns a Publisher that drops every event.
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                        { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	// Err is returned from Publish after recording, when set.
	Err error
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
