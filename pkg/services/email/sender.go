package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/runtime/terminal/export"
	"github.com/google/uuid"
)

const DefaultSubject = "Your SEO ROI Analysis Report"

// Sender turns a report into a message and hands it to a Dispatcher.
type Sender struct {
	dispatcher Dispatcher
	from       string
	subject    string
}

func NewSender(dispatcher Dispatcher, from string) *Sender {
	return &Sender{
		dispatcher: dispatcher,
		from:       from,
		subject:    DefaultSubject,
	}
}

func (s *Sender) Provider() string {
	return s.dispatcher.Provider()
}

// Send validates the address synchronously. Only when it is valid is the
// message dispatched, and the outcome arrives on the returned channel.
func (s *Sender) Send(ctx context.Context, to string, doc *domain.ReportDocument) (string, <-chan Receipt, error) {
	if err := ValidateAddress(to); err != nil {
		return "", nil, err
	}

	var body bytes.Buffer
	if err := export.NewReporter(&body).Handle(doc); err != nil {
		return "", nil, fmt.Errorf("failed to render message body: %w", err)
	}

	msg := Message{
		ID:      uuid.NewString(),
		From:    s.from,
		To:      to,
		Subject: s.subject,
		Body:    body.String(),
	}

	return msg.ID, s.dispatcher.Dispatch(ctx, msg), nil
}
