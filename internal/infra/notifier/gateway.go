package notifier

import "context"

//go:generate mockgen -source=gateway.go -destination=mock.go -package=notifier

// Gateway hands push messages to the delivery queue that reaches the
// user's devices.
type Gateway interface {
	Deliver(ctx context.Context, msg *PushMessage) (*DeliveryReceipt, error)
	Retract(ctx context.Context, messageID string) error
}
