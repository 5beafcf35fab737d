package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/driftmail/newsletter-backend/internal/auth/domain"
	"github.com/driftmail/newsletter-backend/internal/auth/repository"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
	"github.com/driftmail/newsletter-backend/internal/common/logger"
	"github.com/driftmail/newsletter-backend/internal/observability/metrics"
)

// CredentialValidator checks submitted credentials against the stored
// Argon2id hashes. Every call performs exactly one hash verification,
// whether or not the username exists: unknown usernames are verified
// against a fixed fallback hash and the result discarded, so the
// response time does not reveal which usernames are registered.
type CredentialValidator struct {
	repo         repository.Repository
	pool         *VerifyPool
	log          *logger.Logger
	fallbackHash commoncrypto.Secret
}

func NewCredentialValidator(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	pool *VerifyPool,
	log *logger.Logger,
) (*CredentialValidator, error) {
	// Hashing a throwaway password with the live parameters keeps the
	// fallback verification cost identical to a real one.
	fallback, err := hasher.Hash(commoncrypto.NewSecret(uuid.NewString()))
	if err != nil {
		return nil, fmt.Errorf("compute fallback hash: %w", err)
	}

	return &CredentialValidator{
		repo:         repo,
		pool:         pool,
		log:          log,
		fallbackHash: fallback,
	}, nil
}

// Validate returns the user ID for matching credentials. Unknown usernames
// and wrong passwords are indistinguishable to the caller; both come back
// as ErrInvalidCredentials.
func (v *CredentialValidator) Validate(ctx context.Context, creds domain.Credentials) (uuid.UUID, error) {
	stored, found, err := v.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		metrics.CredentialValidationsTotal.WithLabelValues("store_error").Inc()
		return uuid.Nil, commonerrors.ErrCredentialStoreUnavailable.WithCause(err)
	}

	hash := v.fallbackHash
	if found {
		hash = stored.PasswordHash
	}

	verifyErr := v.pool.Verify(ctx, hash, creds.Password)

	if !found {
		// The comparison already ran; its outcome is irrelevant.
		metrics.CredentialValidationsTotal.WithLabelValues("failure").Inc()
		return uuid.Nil, commonerrors.ErrInvalidCredentials.WithCause(errUnknownUsername)
	}

	switch {
	case verifyErr == nil:
		metrics.CredentialValidationsTotal.WithLabelValues("success").Inc()
		return stored.UserID, nil
	case errors.Is(verifyErr, commoncrypto.ErrHashMismatch):
		metrics.CredentialValidationsTotal.WithLabelValues("failure").Inc()
		return uuid.Nil, commonerrors.ErrInvalidCredentials.WithCause(verifyErr)
	case errors.Is(verifyErr, commoncrypto.ErrMalformedHash):
		v.log.WithFields(ctx, logger.Fields{"username": creds.Username}).
			Error("stored password hash is malformed")
		metrics.CredentialValidationsTotal.WithLabelValues("error").Inc()
		return uuid.Nil, commonerrors.ErrCredentialVerification.WithCause(verifyErr)
	case errors.Is(verifyErr, commonerrors.ErrVerifierSaturated):
		metrics.CredentialValidationsTotal.WithLabelValues("error").Inc()
		return uuid.Nil, verifyErr
	default:
		metrics.CredentialValidationsTotal.WithLabelValues("error").Inc()
		return uuid.Nil, commonerrors.ErrCredentialVerification.WithCause(verifyErr)
	}
}
