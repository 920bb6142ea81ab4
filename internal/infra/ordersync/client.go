// Package ordersync calls the order service's contact synchronization endpoint.
package ordersync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"usersync/config"
	deliverycontext "usersync/internal/delivery/context"
	"usersync/internal/domain/entity"
	"usersync/internal/domain/service"

	"github.com/pkg/errors"
)

const maxErrorBody = 512

type httpClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates the order sync client from configuration
func NewClient(cfg *config.Config, logger *slog.Logger) service.OrderSyncClient {
	return NewClientWithHTTP(cfg.OrderSync.BaseURL, &http.Client{Timeout: cfg.OrderSync.Timeout}, logger)
}

// NewClientWithHTTP creates the order sync client on top of the given http.Client
func NewClientWithHTTP(baseURL string, client *http.Client, logger *slog.Logger) service.OrderSyncClient {
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// SyncUser sends one PUT /sync_user/{id}; the call is not retried.
func (c *httpClient) SyncUser(ctx context.Context, userID string, fields entity.ContactFields) (*service.OrderSyncReceipt, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	endpoint := c.baseURL + "/sync_user/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "order service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, errors.Errorf("order service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)

	// A 2xx means the orders were updated; an unreadable body only loses the counts.
	var receipt service.OrderSyncReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		logger.Warn("Order sync succeeded but the response body could not be decoded",
			slog.String("user_id", userID),
			slog.Int("status", resp.StatusCode),
			slog.Any("error", err),
		)

		return &service.OrderSyncReceipt{}, nil
	}

	logger.Info("Order service synchronized user",
		slog.String("user_id", userID),
		slog.Int64("matched_orders", receipt.MatchedOrders),
		slog.Int64("modified_orders", receipt.ModifiedOrders),
	)

	return &receipt, nil
}
