package notifications

import "time"

// Gateway notification types that settle a checkout session.
const (
	TypeSessionCompleted      = "checkout.session.completed"
	TypeAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
)

// Event is a single payment gateway notification.
type Event struct {
	SessionID string
	Type      string
	CreatedAt time.Time
}
