package email

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Body    string
}

type Receipt struct {
	MessageID string
	Provider  string
	Status    Status
	Err       error
	SentAt    time.Time
}

// Dispatcher is the asynchronous second phase of a send. The returned channel
// yields exactly one Receipt and is then closed.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) <-chan Receipt
	Provider() string
}

// SimulatedDispatcher reports delivery after an artificial delay without any
// network traffic.
type SimulatedDispatcher struct {
	delay time.Duration
	now   func() time.Time
}

const DefaultSimulatedDelay = 1500 * time.Millisecond

func NewSimulatedDispatcher(delay time.Duration) *SimulatedDispatcher {
	return &SimulatedDispatcher{delay: delay, now: time.Now}
}

func (d *SimulatedDispatcher) Provider() string {
	return ProviderSimulated
}

func (d *SimulatedDispatcher) Dispatch(ctx context.Context, msg Message) <-chan Receipt {
	out := make(chan Receipt, 1)

	go func() {
		defer close(out)

		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			out <- Receipt{
				MessageID: msg.ID,
				Provider:  ProviderSimulated,
				Status:    StatusCancelled,
				Err:       ctx.Err(),
			}
		case <-timer.C:
			out <- Receipt{
				MessageID: msg.ID,
				Provider:  ProviderSimulated,
				Status:    StatusDelivered,
				SentAt:    d.now(),
			}
		}
	}()

	return out
}
