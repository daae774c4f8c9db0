package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Receipt) Receipt {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "receipt channel closed without a receipt")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for receipt")
		return Receipt{}
	}
}

func TestSimulatedDispatcher_Delivers(t *testing.T) {
	d := NewSimulatedDispatcher(10 * time.Millisecond)

	ch := d.Dispatch(context.Background(), Message{ID: "m-1", To: "user@example.com"})
	r := receive(t, ch)

	assert.Equal(t, "m-1", r.MessageID)
	assert.Equal(t, StatusDelivered, r.Status)
	assert.Equal(t, ProviderSimulated, r.Provider)
	assert.NoError(t, r.Err)
	assert.False(t, r.SentAt.IsZero())

	_, open := <-ch
	assert.False(t, open)
}

func TestSimulatedDispatcher_Cancelled(t *testing.T) {
	d := NewSimulatedDispatcher(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	ch := d.Dispatch(ctx, Message{ID: "m-2"})
	cancel()
	r := receive(t, ch)

	assert.Equal(t, StatusCancelled, r.Status)
	assert.ErrorIs(t, r.Err, context.Canceled)
}

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendEmailOutput), args.Error(1)
}

func TestSESDispatcher_Delivers(t *testing.T) {
	client := new(mockSES)
	messageID := "ses-123"
	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return *in.Source == "reports@example.com" &&
			in.Destination.ToAddresses[0] == "user@example.com" &&
			*in.Message.Subject.Data == "subject" &&
			*in.Message.Body.Text.Data == "body"
	})).Return(&ses.SendEmailOutput{MessageId: &messageID}, nil)

	d := NewSESDispatcher(client)
	r := receive(t, d.Dispatch(context.Background(), Message{
		ID:      "local",
		From:    "reports@example.com",
		To:      "user@example.com",
		Subject: "subject",
		Body:    "body",
	}))

	assert.Equal(t, StatusDelivered, r.Status)
	assert.Equal(t, "ses-123", r.MessageID)
	client.AssertExpectations(t)
}

func TestSESDispatcher_Failure(t *testing.T) {
	client := new(mockSES)
	client.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	d := NewSESDispatcher(client)
	r := receive(t, d.Dispatch(context.Background(), Message{ID: "local", To: "user@example.com"}))

	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "local", r.MessageID)
	assert.ErrorContains(t, r.Err, "throttled")
}
