package payments

import "context"

// CreateSessionParams describes a hosted checkout session to open.
type CreateSessionParams struct {
	Amount      float64 // major currency units
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is a hosted checkout session created with the processor.
type Session struct {
	ID  string
	URL string
}

// Status is the processor's current view of a session.
type Status struct {
	SessionID     string
	PaymentStatus string // "paid" or "unpaid"
}

// WebhookEvent is a parsed, signature-verified processor callback. SessionID
// is empty for event types we do not act on.
type WebhookEvent struct {
	SessionID     string
	PaymentStatus string
}

// Provider abstracts the payment processor so handlers can be exercised with
// a fake in tests.
type Provider interface {
	CreateSession(ctx context.Context, p CreateSessionParams) (*Session, error)
	SessionStatus(ctx context.Context, sessionID string) (*Status, error)
	// ParseWebhook verifies the signature against the raw, unparsed body
	// before decoding anything.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// PaymentStatusPaid is the processor-side value meaning money was received.
const PaymentStatusPaid = "paid"
