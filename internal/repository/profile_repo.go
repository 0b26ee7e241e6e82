package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID returns the user's profile, or nil if it was deleted.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	query := `
        SELECT id, user_id, bio, birthdate, profile_picture, two_factor_enabled
        FROM user_profiles
        WHERE user_id = $1
    `
	var p model.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.Birthdate, &p.ProfilePicture, &p.TwoFactorEnabled,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *ProfileRepository) Update(ctx context.Context, userID int64, bio *string, birthdate *string, picture *string) error {
	query := `
        UPDATE user_profiles
        SET bio             = COALESCE($2, bio),
            birthdate       = COALESCE($3::date, birthdate),
            profile_picture = COALESCE($4, profile_picture)
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID, bio, birthdate, picture)
	return err
}

func (r *ProfileRepository) SetTwoFactorEnabled(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.db.Exec(ctx, `
        UPDATE user_profiles SET two_factor_enabled = $2 WHERE user_id = $1
    `, userID, enabled)
	return err
}

// Delete removes the profile row entirely.
func (r *ProfileRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	return err
}
