package usecase

import (
	"context"
	"time"

	"usersync/internal/domain/entity"
)

// Change event outcomes.
const (
	OutcomeApplied = "applied" // contact fields written to the user's orders
	OutcomeSkipped = "skipped" // no user_id or nothing to apply; acknowledged without writes
)

// ChangeOutcome describes a successfully handled change event
type ChangeOutcome struct {
	Status         string               `json:"status"`
	Event          *entity.ChangeEvent  `json:"event,omitempty"`
	AppliedFields  entity.ContactFields `json:"applied_fields,omitempty"`
	MatchedOrders  int64                `json:"matched_orders"`
	ModifiedOrders int64                `json:"modified_orders"`
	ProcessedAt    time.Time            `json:"processed_at"`
}

// ChangeEventUsecase applies queued user change events to the order store
type ChangeEventUsecase interface {
	// HandleChangeEvent parses and applies one raw event. A poison message error
	// means the event must be rejected without requeue; any other error means the
	// event was interrupted and must be left unacknowledged.
	HandleChangeEvent(ctx context.Context, body []byte) (*ChangeOutcome, error)

	// RecentEvents returns the most recently handled events, oldest first
	RecentEvents() []ChangeOutcome
}
