package service

import (
	"context"
	"errors"
	"fmt"

	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/email"
	"github.com/driftmail/newsletter-backend/internal/observability/metrics"
	"github.com/driftmail/newsletter-backend/internal/subscriber/domain"
	"github.com/driftmail/newsletter-backend/internal/subscriber/repository"
)

type SubscribeInput struct {
	Name  string
	Email string
}

type Service struct {
	repo        repository.Repository
	sender      email.Sender
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
	confirmBase string
}

// NewService wires the subscription flow. confirmBase is the externally
// reachable base URL confirmation links are built from.
func NewService(
	repo repository.Repository,
	sender email.Sender,
	idGenerator commoncrypto.IDGenerator,
	log *logger.Logger,
	confirmBase string,
) *Service {
	return &Service{
		repo:        repo,
		sender:      sender,
		idGenerator: idGenerator,
		log:         log,
		confirmBase: confirmBase,
	}
}

// Subscribe validates the input, stores a pending subscriber together with
// a fresh confirmation token, and emails the confirmation link.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) error {
	name, err := domain.ParseName(input.Name)
	if err != nil {
		return commonerrors.ErrInvalidSubscriberInput.WithCause(err)
	}

	address, err := domain.ParseEmail(input.Email)
	if err != nil {
		return commonerrors.ErrInvalidSubscriberInput.WithCause(err)
	}

	token, err := s.idGenerator.NewID()
	if err != nil {
		return commonerrors.ErrInternalError.WithCause(err)
	}

	if _, err := s.repo.InsertPending(ctx, address, name, token); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadySubscribed) {
			return commonerrors.ErrAlreadySubscribed.WithCause(err)
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.SubscriptionsCreatedTotal.Inc()

	link := fmt.Sprintf("%s/api/subscriptions/confirm?subscription_token=%s", s.confirmBase, token)
	msg := email.Message{
		To:      address.String(),
		Subject: "Welcome!",
		HTMLBody: fmt.Sprintf(
			"Welcome to our newsletter!<br />Click <a href=\"%s\">here</a> to confirm your subscription.",
			link,
		),
		TextBody: fmt.Sprintf(
			"Welcome to our newsletter!\nVisit %s to confirm your subscription.",
			link,
		),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "subscribe"}).
			Errorf("failed to send confirmation email: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	return nil
}

// Confirm flips a pending subscriber to confirmed via its token.
func (s *Service) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return commonerrors.ErrMissingSubscriptionToken
	}

	if err := s.repo.ConfirmByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return commonerrors.ErrUnknownSubscriptionToken.WithCause(err)
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.SubscriptionsConfirmedTotal.Inc()
	return nil
}
