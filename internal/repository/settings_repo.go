package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `
        id, user_id, auto_reply_enabled, auto_reply_start_date, auto_reply_end_date,
        auto_reply_message, font_family, font_size, dark_mode`

// GetOrCreate returns the user's settings row, inserting the default row
// first if none exists. The insert is an upsert keyed on the user_id
// unique index, so two concurrent first accesses still end up with
// exactly one row.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, userID int64) (*model.UserSettings, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO user_settings (user_id)
        VALUES ($1)
        ON CONFLICT (user_id) DO NOTHING
    `, userID)
	if err != nil {
		return nil, err
	}

	return r.FindByUserID(ctx, userID)
}

// FindByUserID returns the settings row, or nil when none exists.
func (r *SettingsRepository) FindByUserID(ctx context.Context, userID int64) (*model.UserSettings, error) {
	query := `SELECT` + settingsColumns + `
        FROM user_settings
        WHERE user_id = $1`

	var s model.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.AutoReplyEnabled, &s.AutoReplyStartDate, &s.AutoReplyEndDate,
		&s.AutoReplyMessage, &s.FontFamily, &s.FontSize, &s.DarkMode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *model.UserSettings) error {
	query := `
        UPDATE user_settings
        SET auto_reply_enabled    = $2,
            auto_reply_start_date = $3,
            auto_reply_end_date   = $4,
            auto_reply_message    = $5,
            font_family           = $6,
            font_size             = $7,
            dark_mode             = $8
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query,
		s.UserID, s.AutoReplyEnabled, s.AutoReplyStartDate, s.AutoReplyEndDate,
		s.AutoReplyMessage, s.FontFamily, s.FontSize, s.DarkMode,
	)
	return err
}
