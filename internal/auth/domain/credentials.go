package domain

import (
	"github.com/google/uuid"

	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
)

// Credentials is a per-request username/password pair. The password lives in
// a Secret so it survives neither logging nor serialization.
type Credentials struct {
	Username string
	Password commoncrypto.Secret
}

// StoredCredentials is the persisted identity for a username. At most one
// row exists per username; the store enforces that uniqueness.
type StoredCredentials struct {
	UserID       uuid.UUID
	PasswordHash commoncrypto.Secret
}
