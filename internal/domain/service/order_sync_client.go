package service

import (
	"context"

	"usersync/internal/domain/entity"
)

// OrderSyncReceipt is the order service's answer to a sync request
type OrderSyncReceipt struct {
	Message        string               `json:"message"`
	UpdatedFields  entity.ContactFields `json:"updated_fields"`
	MatchedOrders  int64                `json:"matched_orders"`
	ModifiedOrders int64                `json:"modified_orders"`
}

// OrderSyncClient defines the synchronous call user service v1 makes to the order service
type OrderSyncClient interface {
	// SyncUser asks the order service to overwrite the contact fields on every order of the user
	SyncUser(ctx context.Context, userID string, fields entity.ContactFields) (*OrderSyncReceipt, error)
}
