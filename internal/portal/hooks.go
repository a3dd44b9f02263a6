package portal

import (
	"context"

	"github.com/spec-kit/clinic-portal/internal/notify"
)

// Hooks is the portal's reaction to the interceptor pipeline's failure
// classification. Both methods are idempotent: concurrent 401s each
// push their own notification, which is harmless, and the forced
// navigation happens through the error middleware when the handler's
// record-service error surfaces.
type Hooks struct {
	notifier *notify.Notifier
}

// NewHooks builds the pipeline hooks.
func NewHooks(notifier *notify.Notifier) *Hooks {
	return &Hooks{notifier: notifier}
}

// OnUnauthorized surfaces the session-expired notification. The token
// slot itself is already cleared by the pipeline.
func (h *Hooks) OnUnauthorized(ctx context.Context) {
	h.notifier.Error("Your session has expired. Please log in again.", "Session expired")
}

// OnServerError surfaces a generic, non-destructive notification.
func (h *Hooks) OnServerError(ctx context.Context, status int) {
	h.notifier.Error("A server error occurred. Please try again later.", "Server error")
}
