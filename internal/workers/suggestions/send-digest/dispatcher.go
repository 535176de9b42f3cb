// internal/workers/suggestions/send-digest/dispatcher.go
package senddigest

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
)

const (
	ComponentName = "send-digest"
)

// Dispatch outcomes.
const (
	StatusSent    = "SENT"
	StatusSkipped = "SKIPPED"
	StatusFailed  = "FAILED"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Dispatcher delivers a composed digest. Send failures are terminal here:
// they are logged and counted, never retried, and never bubble up to fail
// the request that produced the digest.
type Dispatcher struct {
	config    *Config
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
}

func NewDispatcher(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		config:    config,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log.WithFields(map[string]interface{}{"component": ComponentName}),
	}
}

// Dispatch sends the digest to the recipient email. A missing recipient is a
// quiet skip, not an error. When the SMS fan-out topic is configured, the
// body is also published there.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient, subject, body string) string {
	if recipient == "" {
		d.logger.Warn("no recipient address, skipping dispatch", nil)
		metrics.NotificationsSent.WithLabelValues("email", StatusSkipped).Inc()
		return StatusSkipped
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	status := StatusSkipped
	if d.config.EmailEnabled {
		if err := d.sendEmail(ctx, recipient, subject, body); err != nil {
			d.logger.WithError(err).Error("email dispatch failed", map[string]interface{}{
				"recipient": recipient,
			})
			metrics.NotificationsSent.WithLabelValues("email", StatusFailed).Inc()
			return StatusFailed
		}
		metrics.NotificationsSent.WithLabelValues("email", StatusSent).Inc()
		d.logger.Info("digest email sent", map[string]interface{}{"recipient": recipient})
		status = StatusSent
	}

	if d.config.SMSEnabled && d.config.TopicARN != "" {
		if err := d.publishSMS(ctx, subject, body); err != nil {
			d.logger.WithError(err).Error("sms fan-out failed", map[string]interface{}{
				"topic": d.config.TopicARN,
			})
			metrics.NotificationsSent.WithLabelValues("sms", StatusFailed).Inc()
		} else {
			metrics.NotificationsSent.WithLabelValues("sms", StatusSent).Inc()
		}
	}

	return status
}

func (d *Dispatcher) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := d.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(d.config.FromEmail),
	})
	return err
}

func (d *Dispatcher) publishSMS(ctx context.Context, subject, body string) error {
	_, err := d.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(d.config.TopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(body),
	})
	return err
}
