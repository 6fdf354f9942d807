package ports

import (
	"context"

	"github.com/gorchard/farmhand/internal/domain"
)

// AlertTransport delivers one notification. Implementations make a single
// attempt; retry policy is the caller's concern (and the caller never
// retries).
type AlertTransport interface {
	Send(ctx context.Context, settings domain.AlertSettings, subject, body string) error
}
