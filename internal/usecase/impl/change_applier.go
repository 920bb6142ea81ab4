package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"usersync/config"
	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/usecase"

	"github.com/pkg/errors"
)

type changeApplier struct {
	orderRepo repository.OrderRepository
	trail     *eventTrail
	logger    *slog.Logger
	now       func() time.Time
}

// NewChangeApplier creates the usecase that applies queued change events to orders
func NewChangeApplier(orderRepo repository.OrderRepository, cfg *config.Config, logger *slog.Logger) usecase.ChangeEventUsecase {
	trailSize := config.DefaultTrailSize
	if cfg != nil && cfg.Consumer != nil && cfg.Consumer.TrailSize > 0 {
		trailSize = cfg.Consumer.TrailSize
	}

	return &changeApplier{
		orderRepo: orderRepo,
		trail:     newEventTrail(trailSize),
		logger:    logger,
		now:       time.Now,
	}
}

// HandleChangeEvent applies one event. The write is a field overwrite, so a
// redelivered event converges to the same order state.
func (a *changeApplier) HandleChangeEvent(ctx context.Context, body []byte) (*usecase.ChangeOutcome, error) {
	var event entity.ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, domainerrors.NewPoisonMessageError(err, "malformed event")
	}

	outcome := &usecase.ChangeOutcome{
		Status: usecase.OutcomeSkipped,
		Event:  &event,
	}

	contact := event.Contact()
	if event.UserID == "" || contact.IsEmpty() {
		a.logger.Info("[Consumer] Ignoring change event with nothing to apply",
			slog.String("event_id", event.EventID),
			slog.String("user_id", event.UserID),
		)
		outcome.ProcessedAt = a.now()
		a.trail.record(*outcome)

		return outcome, nil
	}

	res, err := a.orderRepo.SetContactFieldsByUser(ctx, event.UserID, contact)
	if err != nil {
		// Shutting down mid-write: leave the event unacknowledged for redelivery.
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "change event interrupted")
		}

		return nil, domainerrors.NewPoisonMessageError(err, "store rejected update")
	}

	outcome.Status = usecase.OutcomeApplied
	outcome.AppliedFields = contact
	outcome.MatchedOrders = res.Matched
	outcome.ModifiedOrders = res.Modified
	outcome.ProcessedAt = a.now()
	a.trail.record(*outcome)

	a.logger.Info("[Consumer] Applied change event",
		slog.String("event_id", event.EventID),
		slog.String("user_id", event.UserID),
		slog.Int64("matched_orders", res.Matched),
		slog.Int64("modified_orders", res.Modified),
	)

	return outcome, nil
}

// RecentEvents returns the most recently handled events, oldest first
func (a *changeApplier) RecentEvents() []usecase.ChangeOutcome {
	return a.trail.snapshot()
}
