package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `
        INSERT INTO sessions (user_id, token, issued_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, s.UserID, s.Token, s.IssuedAt, s.ExpiresAt).Scan(&s.ID)
}

// FindActiveByToken returns the user owning a live session with this
// token, or nil when the token is unknown, revoked, or expired. Executed
// fresh on every request; sessions can be revoked concurrently.
func (r *SessionRepository) FindActiveByToken(ctx context.Context, token string) (*model.User, error) {
	query := `
        SELECT u.id, u.phone_number, u.password_hash, u.first_name, u.last_name, u.email, u.created_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1
          AND s.revoked_at IS NULL
          AND s.expires_at > NOW()
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, token).Scan(
		&u.ID, &u.PhoneNumber, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RevokeByToken invalidates a session in a single atomic update, so a
// logout racing another logout or a login cannot resurrect the token.
func (r *SessionRepository) RevokeByToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE sessions
        SET revoked_at = NOW()
        WHERE token = $1 AND revoked_at IS NULL
    `, token)
	return err
}

// RevokeOthers revokes every live session of the user except keepToken.
// Used after a password change.
func (r *SessionRepository) RevokeOthers(ctx context.Context, userID int64, keepToken string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE sessions
        SET revoked_at = NOW()
        WHERE user_id = $1 AND token <> $2 AND revoked_at IS NULL
    `, userID, keepToken)
	return err
}
