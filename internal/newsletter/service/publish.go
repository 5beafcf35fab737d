package service

import (
	"context"
	"fmt"

	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/email"
	"github.com/driftmail/newsletter-backend/internal/newsletter/domain"
	"github.com/driftmail/newsletter-backend/internal/observability/metrics"
	subrepository "github.com/driftmail/newsletter-backend/internal/subscriber/repository"
)

// Publisher fans a newsletter issue out to every confirmed subscriber.
// Delivery is strictly sequential: one recipient at a time, in listing
// order. Rows with an unusable stored address are skipped with a warning;
// the first transport failure aborts the remaining fan-out. A retried
// publish after a partial failure re-sends to recipients already served.
type Publisher struct {
	subscribers subrepository.Repository
	sender      email.Sender
	log         *logger.Logger
}

func NewPublisher(subscribers subrepository.Repository, sender email.Sender, log *logger.Logger) *Publisher {
	return &Publisher{
		subscribers: subscribers,
		sender:      sender,
		log:         log,
	}
}

func (p *Publisher) Publish(ctx context.Context, issue domain.Issue) error {
	recipients, err := p.subscribers.ListConfirmed(ctx)
	if err != nil {
		metrics.NewsletterPublishesTotal.WithLabelValues("error").Inc()
		return commonerrors.ErrSubscriberListUnavailable.WithCause(err)
	}

	for _, recipient := range recipients {
		if recipient.Err != nil {
			metrics.NewsletterEmailsSkippedTotal.Inc()
			p.log.WithFields(ctx, logger.Fields{"action": "publish"}).
				Warnf("skipping subscriber with invalid stored email: %v", recipient.Err)
			continue
		}

		msg := email.Message{
			To:       recipient.Email.String(),
			Subject:  issue.Title,
			HTMLBody: issue.Content.HTML,
			TextBody: issue.Content.Text,
		}

		if err := p.sender.Send(ctx, msg); err != nil {
			metrics.NewsletterEmailsFailedTotal.Inc()
			metrics.NewsletterPublishesTotal.WithLabelValues("error").Inc()
			return commonerrors.ErrNewsletterDispatch.WithCause(
				fmt.Errorf("failed to deliver issue to %s: %w", recipient.Email.String(), err),
			)
		}

		metrics.NewsletterEmailsSentTotal.Inc()
	}

	metrics.NewsletterPublishesTotal.WithLabelValues("success").Inc()
	return nil
}
