package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NewsletterPublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_publishes_total",
			Help: "Total number of newsletter publish operations",
		},
		[]string{"result"},
	)

	NewsletterEmailsSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_emails_sent_total",
			Help: "Total number of newsletter issues handed to the mail transport",
		},
	)

	NewsletterEmailsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_emails_skipped_total",
			Help: "Total number of confirmed subscribers skipped due to invalid stored contact details",
		},
	)

	NewsletterEmailsFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_emails_failed_total",
			Help: "Total number of mail transport failures during fan-out",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriptions_created_total",
			Help: "Total number of new pending subscriptions",
		},
	)

	SubscriptionsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriptions_confirmed_total",
			Help: "Total number of confirmed subscriptions",
		},
	)
)
