package eventbus

import "context"

// Consumer handles events of the types it is subscribed to. Returning a
// retry.Permanent error skips the remaining attempts.
type Consumer interface {
	Consume(ctx context.Context, event Event) error
	Name() string
	GetWorkerCount() int
}
