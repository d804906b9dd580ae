// Package telemetry defines the account event stream exported through the
// OpenTelemetry log pipeline.
package telemetry

import (
	"context"
	"time"
)

// Event types emitted by the auth service.
const (
	EventSignup         = "account.signup"
	EventLogin          = "account.login"
	EventResetRequested = "account.reset_requested"
	EventPasswordReset  = "account.password_reset"
)

// Event is one security-relevant account action. It never carries passwords,
// password hashes, or reset tokens.
type Event struct {
	Type   string
	UserID string
	Email  string
	At     time.Time
}

// EventEmitter emits account events (e.g. to OTel Logs). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
