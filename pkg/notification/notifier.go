package notification

import "context"

// Notifier delivers a short out-of-band message to one recipient. Delivery
// is best-effort: callers log the outcome and never let a failure abort the
// operation that triggered it.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// Outcome records the result of one delivery attempt. It is consumed only
// for logging, never for control flow.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeSent
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "SENT"
	case OutcomeFailed:
		return "FAILED"
	default:
		return "SKIPPED"
	}
}
