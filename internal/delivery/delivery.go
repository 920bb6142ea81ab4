// Package delivery defines the long-running entry points started by each binary.
package delivery

import "context"

// Delivery is a blocking server started once the application is wired.
type Delivery interface {
	Serve(ctx context.Context) error
}
