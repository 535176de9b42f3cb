// internal/workers/suggestions/send-digest/dispatcher_test.go
package senddigest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/logger"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func testConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "concierge@example.com",
		Timeout:      5 * time.Second,
	}
}

func TestDispatchSendsEmail(t *testing.T) {
	var captured *ses.SendEmailInput
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{}, nil
		},
	}

	d := NewDispatcher(testConfig(), sesMock, &MockSNSService{}, logger.NewTestLogger(t))
	status := d.Dispatch(context.Background(), "diner@example.com", "Italian restaurants in Manhattan", "body text")

	assert.Equal(t, StatusSent, status)
	require.NotNil(t, captured)
	assert.Equal(t, []string{"diner@example.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "concierge@example.com", *captured.Source)
	assert.Equal(t, "Italian restaurants in Manhattan", *captured.Message.Subject.Data)
	assert.Equal(t, "body text", *captured.Message.Body.Text.Data)
}

func TestDispatchEmptyRecipientSkips(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("SendEmail must not be called without a recipient")
			return nil, nil
		},
	}

	d := NewDispatcher(testConfig(), sesMock, &MockSNSService{}, logger.NewTestLogger(t))
	status := d.Dispatch(context.Background(), "", "subject", "body")

	assert.Equal(t, StatusSkipped, status)
}

func TestDispatchSendFailureIsTerminal(t *testing.T) {
	calls := 0
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			calls++
			return nil, errors.New("MessageRejected")
		},
	}

	d := NewDispatcher(testConfig(), sesMock, &MockSNSService{}, logger.NewTestLogger(t))
	status := d.Dispatch(context.Background(), "diner@example.com", "subject", "body")

	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, 1, calls, "no retry at this layer")
}

func TestDispatchFansOutToSNSWhenConfigured(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}
	var published *sns.PublishInput
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			published = params
			return &sns.PublishOutput{}, nil
		},
	}

	cfg := testConfig()
	cfg.SMSEnabled = true
	cfg.TopicARN = "arn:aws:sns:us-east-1:123456789012:dining-digests"

	d := NewDispatcher(cfg, sesMock, snsMock, logger.NewTestLogger(t))
	status := d.Dispatch(context.Background(), "diner@example.com", "subject", "body")

	assert.Equal(t, StatusSent, status)
	require.NotNil(t, published)
	assert.Equal(t, cfg.TopicARN, *published.TopicArn)
	assert.Equal(t, "body", *published.Message)
}

func TestDispatchSNSFailureDoesNotDowngradeEmail(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("topic gone")
		},
	}

	cfg := testConfig()
	cfg.SMSEnabled = true
	cfg.TopicARN = "arn:aws:sns:us-east-1:123456789012:dining-digests"

	d := NewDispatcher(cfg, sesMock, snsMock, logger.NewTestLogger(t))
	status := d.Dispatch(context.Background(), "diner@example.com", "subject", "body")

	assert.Equal(t, StatusSent, status)
}
