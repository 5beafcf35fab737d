package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/driftmail/newsletter-backend/internal/common/db"
	"github.com/driftmail/newsletter-backend/internal/subscriber/domain"
)

var (
	ErrEmailAlreadySubscribed = errors.New("email is already subscribed")
	ErrTokenNotFound          = errors.New("subscription token not found")
)

type Repository interface {
	InsertPending(ctx context.Context, email domain.Email, name domain.Name, token string) (uuid.UUID, error)
	ConfirmByToken(ctx context.Context, token string) error
	ListConfirmed(ctx context.Context) ([]domain.ConfirmedRecipient, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// InsertPending stores a new pending subscriber and its confirmation token
// in one transaction, so a failed token insert never leaves a subscriber
// without a way to confirm.
func (r *PgRepository) InsertPending(ctx context.Context, email domain.Email, name domain.Name, token string) (uuid.UUID, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, db.HandleExecError(err, "begin subscriber transaction", start)
	}
	defer tx.Rollback(ctx)

	subscriberID := uuid.New()

	_, err = tx.Exec(
		ctx,
		`INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		 VALUES ($1, $2, $3, now(), $4)`,
		subscriberID,
		email.String(),
		name.String(),
		string(domain.StatusPendingConfirmation),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, ErrEmailAlreadySubscribed
		}
		return uuid.Nil, db.HandleExecError(err, "insert subscriber", start)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		 VALUES ($1, $2)`,
		token,
		subscriberID,
	)
	if err != nil {
		return uuid.Nil, db.HandleExecError(err, "insert subscription token", start)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, db.HandleExecError(err, "commit subscriber transaction", start)
	}

	return subscriberID, nil
}

func (r *PgRepository) ConfirmByToken(ctx context.Context, token string) error {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`,
		token,
	)

	var subscriberID uuid.UUID
	if err := row.Scan(&subscriberID); err != nil {
		return db.HandleQueryError(err, ErrTokenNotFound, "find subscriber by token", start)
	}

	_, err := r.pool.Exec(
		ctx,
		`UPDATE subscriptions SET status = $1 WHERE id = $2`,
		string(domain.StatusConfirmed),
		subscriberID,
	)
	return db.HandleExecError(err, "confirm subscriber", start)
}

// ListConfirmed returns one row per confirmed subscriber. Stored addresses
// that no longer pass validation come back with Err set rather than failing
// the whole listing.
func (r *PgRepository) ListConfirmed(ctx context.Context) ([]domain.ConfirmedRecipient, error) {
	start := time.Now()

	rows, err := r.pool.Query(
		ctx,
		`SELECT email FROM subscriptions WHERE status = $1`,
		string(domain.StatusConfirmed),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, err, "list confirmed subscribers", start)
	}
	defer rows.Close()

	var recipients []domain.ConfirmedRecipient
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}

		email, err := domain.ParseEmail(raw)
		if err != nil {
			recipients = append(recipients, domain.ConfirmedRecipient{Err: err})
			continue
		}
		recipients = append(recipients, domain.ConfirmedRecipient{Email: email})
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return recipients, nil
}
