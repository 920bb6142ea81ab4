package impl

import (
	"time"

	"usersync/internal/domain/entity"

	"github.com/google/uuid"
)

const changeEventSource = "user_v2"

func newChangeEvent(userID string, fields entity.ContactFields, requestID string) *entity.ChangeEvent {
	now := time.Now().UTC()

	return &entity.ChangeEvent{
		EventID:    uuid.New().String(),
		UserID:     userID,
		Update:     fields.AsAny(),
		Source:     changeEventSource,
		RequestID:  requestID,
		OccurredAt: &now,
	}
}
