package settings

import (
	"context"
	"time"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
)

// Store is the settings repository surface. GetOrCreate must be safe
// under concurrent first access for the same user.
type Store interface {
	GetOrCreate(ctx context.Context, userID int64) (*model.UserSettings, error)
	Update(ctx context.Context, s *model.UserSettings) error
}

var allowedFonts = map[string]bool{
	"sans-serif": true,
	"serif":      true,
	"monospace":  true,
	"arial":      true,
	"georgia":    true,
	"verdana":    true,
}

const (
	minFontSize = 8
	maxFontSize = 72

	defaultAutoReplyWindow = 30 * 24 * time.Hour
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	settings, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

// AutoReplyUpdate is a partial update; nil fields are left untouched.
type AutoReplyUpdate struct {
	Enabled   *bool
	StartDate *time.Time
	EndDate   *time.Time
	Message   *string
}

// UpdateAutoReply applies a partial auto-reply update. When both bounds
// are supplied the start must precede the end; nothing is persisted on a
// validation failure.
func (s *Service) UpdateAutoReply(ctx context.Context, userID int64, in AutoReplyUpdate) (*model.UserSettings, error) {
	if in.StartDate != nil && in.EndDate != nil && in.StartDate.After(*in.EndDate) {
		return nil, apperr.Validation("auto_reply_start_date must be before auto_reply_end_date")
	}

	settings, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if in.Enabled != nil {
		settings.AutoReplyEnabled = *in.Enabled
	}
	if in.StartDate != nil {
		settings.AutoReplyStartDate = in.StartDate
	}
	if in.EndDate != nil {
		settings.AutoReplyEndDate = in.EndDate
	}
	if in.Message != nil {
		settings.AutoReplyMessage = *in.Message
	}

	if err := s.store.Update(ctx, settings); err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

// ToggleAutoReply flips the enabled flag. When the toggle enables
// auto-reply, missing window bounds default to now and now+30d, each
// independently: a stored start bound never shifts the defaulted end,
// so enabling with a stale start still opens a live window.
func (s *Service) ToggleAutoReply(ctx context.Context, userID int64) (*model.UserSettings, error) {
	settings, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	settings.AutoReplyEnabled = !settings.AutoReplyEnabled

	if settings.AutoReplyEnabled {
		now := s.now()
		if settings.AutoReplyStartDate == nil {
			settings.AutoReplyStartDate = &now
		}
		if settings.AutoReplyEndDate == nil {
			end := now.Add(defaultAutoReplyWindow)
			settings.AutoReplyEndDate = &end
		}
	}

	if err := s.store.Update(ctx, settings); err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

// UpdateFont applies a partial font update.
func (s *Service) UpdateFont(ctx context.Context, userID int64, family *string, size *int) (*model.UserSettings, error) {
	if family != nil && !allowedFonts[*family] {
		return nil, apperr.Validation("Unsupported font family")
	}
	if size != nil && (*size < minFontSize || *size > maxFontSize) {
		return nil, apperr.Validation("Font size must be between 8 and 72")
	}

	settings, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if family != nil {
		settings.FontFamily = *family
	}
	if size != nil {
		settings.FontSize = *size
	}

	if err := s.store.Update(ctx, settings); err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

// SetDarkMode sets the flag to an explicit value; presence of the field
// is enforced at the HTTP boundary.
func (s *Service) SetDarkMode(ctx context.Context, userID int64, enabled bool) (*model.UserSettings, error) {
	settings, err := s.store.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	settings.DarkMode = enabled

	if err := s.store.Update(ctx, settings); err != nil {
		return nil, apperr.Internal(err)
	}
	return settings, nil
}
