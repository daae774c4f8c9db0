package email

import (
	"context"
	"sync"
	"time"

	"github.com/de-tools/roi-atlas/pkg/metrics"
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type Delivery struct {
	ID          string    `json:"id"`
	To          string    `json:"to"`
	Provider    string    `json:"provider"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

type Controller interface {
	Start(ctx context.Context, to string, doc *domain.ReportDocument) (Delivery, error)
	Status(ctx context.Context, id string) (Delivery, error)
	Cancel(ctx context.Context, id string) error
}

type deliveryDescriptor struct {
	cancelFunc context.CancelFunc
	done       chan struct{}
	delivery   Delivery
}

// DefaultRetention is how long a finished delivery stays queryable.
const DefaultRetention = time.Hour

// DefaultController tracks deliveries by id. Finished deliveries are evicted
// once retention has elapsed since they completed.
type DefaultController struct {
	sender    *Sender
	retention time.Duration

	mu         sync.Mutex
	deliveries map[string]*deliveryDescriptor
}

// NewController falls back to DefaultRetention when retention is not positive.
func NewController(sender *Sender, retention time.Duration) *DefaultController {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &DefaultController{
		sender:     sender,
		retention:  retention,
		deliveries: make(map[string]*deliveryDescriptor),
	}
}

// Start returns once the address is validated and the message is handed to
// the dispatcher. The delivery outlives ctx's cancellation but keeps its values.
func (ctrl *DefaultController) Start(ctx context.Context, to string, doc *domain.ReportDocument) (Delivery, error) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	id, receipts, err := ctrl.sender.Send(runCtx, to, doc)
	if err != nil {
		cancel()
		return Delivery{}, err
	}

	desc := &deliveryDescriptor{
		cancelFunc: cancel,
		done:       make(chan struct{}),
		delivery: Delivery{
			ID:        id,
			To:        to,
			Provider:  ctrl.sender.Provider(),
			Status:    StatusPending,
			StartedAt: time.Now().UTC(),
		},
	}

	ctrl.mu.Lock()
	ctrl.deliveries[id] = desc
	ctrl.mu.Unlock()

	metrics.EmailDeliveriesInFlight.Inc()
	go ctrl.await(runCtx, desc, receipts)

	return desc.delivery, nil
}

func (ctrl *DefaultController) Status(_ context.Context, id string) (Delivery, error) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.deliveries[id]
	if !ok {
		return Delivery{}, notFound(id)
	}
	return desc.delivery, nil
}

// Cancel stops a pending delivery and waits for its receipt. Cancelling a
// finished delivery leaves its status unchanged.
func (ctrl *DefaultController) Cancel(_ context.Context, id string) error {
	ctrl.mu.Lock()
	desc, ok := ctrl.deliveries[id]
	ctrl.mu.Unlock()

	if !ok {
		return notFound(id)
	}

	desc.cancelFunc()
	<-desc.done
	return nil
}

func (ctrl *DefaultController) await(ctx context.Context, desc *deliveryDescriptor, receipts <-chan Receipt) {
	defer close(desc.done)
	defer desc.cancelFunc()
	defer metrics.EmailDeliveriesInFlight.Dec()

	logger := zerolog.Ctx(ctx).With().
		Str("delivery_id", desc.delivery.ID).
		Str("provider", desc.delivery.Provider).
		Logger()

	receipt, ok := <-receipts
	if !ok {
		receipt = Receipt{Status: StatusFailed}
	}

	ctrl.mu.Lock()
	desc.delivery.Status = receipt.Status
	desc.delivery.CompletedAt = time.Now().UTC()
	if receipt.Err != nil {
		desc.delivery.Error = receipt.Err.Error()
	}
	ctrl.mu.Unlock()

	time.AfterFunc(ctrl.retention, func() { ctrl.evict(desc) })

	metrics.EmailDeliveriesTotal.WithLabelValues(desc.delivery.Provider, string(receipt.Status)).Inc()

	if receipt.Status == StatusDelivered {
		logger.Info().Str("message_id", receipt.MessageID).Msg("Email delivered")
		return
	}
	logger.Warn().Err(receipt.Err).Str("status", string(receipt.Status)).Msg("Email not delivered")
}

// evict drops desc unless its id has since been taken by another delivery.
func (ctrl *DefaultController) evict(desc *deliveryDescriptor) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.deliveries[desc.delivery.ID] == desc {
		delete(ctrl.deliveries, desc.delivery.ID)
	}
}

func notFound(id string) error {
	return domain.NewStandardError(domain.ErrCodeDeliveryNotFound, "Delivery not found", id)
}
