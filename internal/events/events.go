package events

import "context"

// Stream and event names for the live admin feed.
const (
	StreamVisits       = "events:visit"
	EventVisitRecorded = "visit_recorded"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
