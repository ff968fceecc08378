package webhook

import "time"

// Event types that trigger webhook deliveries.
const (
	EventTemplateCreated   = "template.created"
	EventTemplateUpdated   = "template.updated"
	EventTemplateDeleted   = "template.deleted"
	EventSubmissionCreated = "submission.created"
)

// Event is the payload delivered to subscribed endpoints.
type Event struct {
	Type      string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Resource  Resource  `json:"resource"`
	Data      any       `json:"data,omitempty"`
}

// Resource identifies the record that triggered the event.
type Resource struct {
	Type string `json:"type"` // "template" or "submission"
	ID   string `json:"id"`
}
