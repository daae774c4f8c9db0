package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESDispatcher delivers through Amazon SES.
type SESDispatcher struct {
	client SendEmailAPI
}

func NewSESDispatcher(client SendEmailAPI) *SESDispatcher {
	return &SESDispatcher{client: client}
}

func (d *SESDispatcher) Provider() string {
	return ProviderSES
}

func (d *SESDispatcher) Dispatch(ctx context.Context, msg Message) <-chan Receipt {
	out := make(chan Receipt, 1)

	go func() {
		defer close(out)

		resp, err := d.client.SendEmail(ctx, &ses.SendEmailInput{
			Source:      aws.String(msg.From),
			Destination: &types.Destination{ToAddresses: []string{msg.To}},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
				},
			},
		})
		if err != nil {
			status := StatusFailed
			if errors.Is(err, context.Canceled) {
				status = StatusCancelled
			}
			out <- Receipt{
				MessageID: msg.ID,
				Provider:  ProviderSES,
				Status:    status,
				Err:       fmt.Errorf("ses send failed: %w", err),
			}
			return
		}

		id := msg.ID
		if resp != nil && resp.MessageId != nil {
			id = *resp.MessageId
		}
		out <- Receipt{
			MessageID: id,
			Provider:  ProviderSES,
			Status:    StatusDelivered,
			SentAt:    time.Now(),
		}
	}()

	return out
}
