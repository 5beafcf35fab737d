package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/driftmail/newsletter-backend/internal/auth/domain"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	"github.com/driftmail/newsletter-backend/internal/common/db"
)

// Repository looks up stored credentials by username. "Not found" is the
// (zero value, false, nil) triple, never an error; a non-nil error always
// means the store itself failed.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (domain.StoredCredentials, bool, error)
}

var errNotFound = errors.New("stored credentials not found")

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.StoredCredentials, bool, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT user_id, password_hash FROM users WHERE username = $1`,
		username,
	)

	var (
		stored domain.StoredCredentials
		hash   string
	)
	err := db.HandleQueryError(row.Scan(&stored.UserID, &hash), errNotFound, "find stored credentials", start)
	if errors.Is(err, errNotFound) {
		return domain.StoredCredentials{}, false, nil
	}
	if err != nil {
		return domain.StoredCredentials{}, false, err
	}

	stored.PasswordHash = commoncrypto.NewSecret(hash)
	return stored, true, nil
}

var _ Repository = (*PgRepository)(nil)
