package entity

import "time"

// ChangeEvent announces that a user's contact fields changed. Consumers only
// rely on UserID and Update; the remaining fields are for tracing.
type ChangeEvent struct {
	EventID    string         `json:"event_id,omitempty"`
	UserID     string         `json:"user_id"`
	Update     map[string]any `json:"update"`
	Source     string         `json:"source,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt *time.Time     `json:"occurred_at,omitempty"`
}

// Contact returns the allowed subset of the update.
func (e *ChangeEvent) Contact() ContactFields {
	return FilterContactFields(e.Update)
}
