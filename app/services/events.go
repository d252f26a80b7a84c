package services

import (
	"context"
	"log"
	"time"

	"blog/app/events"
)

// publish sends ev and only logs failures: the write it describes is already committed.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	ev.OccurredAt = time.Now().UTC()
	if err := p.Publish(ctx, ev); err != nil {
		log.Printf("publish %s event for post %d: %v", ev.Type, ev.PostID, err)
	}
}

func orNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.Nop()
	}
	return p
}
