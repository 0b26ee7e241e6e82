package mailbox

import (
	"context"
	"fmt"
	"strings"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/internal/util"
	"gotmail/pkg/metrics"
)

type EmailStore interface {
	Create(ctx context.Context, e *model.Email, recipientIDs []int64, labelIDs []int64, attachments []model.Attachment) error
	Search(ctx context.Context, userID int64, f model.EmailFilter) ([]model.Email, error)
	UpdateFlags(ctx context.Context, userID, emailID int64, f model.FlagUpdate) (*model.Email, error)
}

// UserDirectory resolves recipient addresses. Returns (nil, nil) when the
// address is unknown.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type LabelStore interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Label, error)
	FindOwned(ctx context.Context, userID int64, ids []int64) ([]model.Label, error)
}

type Service struct {
	emails EmailStore
	users  UserDirectory
	labels LabelStore
}

func NewService(emails EmailStore, users UserDirectory, labels LabelStore) *Service {
	return &Service{
		emails: emails,
		users:  users,
		labels: labels,
	}
}

type SendInput struct {
	To          []string
	Subject     string
	Body        string
	LabelIDs    []int64
	Attachments []model.Attachment
}

// Send resolves recipients, sanitizes the body, and stores the email.
func (s *Service) Send(ctx context.Context, senderID int64, in SendInput) (*model.Email, error) {
	if len(in.To) == 0 {
		return nil, apperr.Validation("At least one recipient is required")
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, apperr.Validation("Subject is required")
	}

	recipientIDs := make([]int64, 0, len(in.To))
	seen := map[int64]bool{}
	for _, addr := range in.To {
		u, err := s.users.FindByEmail(ctx, addr)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if u == nil {
			return nil, apperr.Validation(fmt.Sprintf("Unknown recipient: %s", addr))
		}
		if !seen[u.ID] {
			seen[u.ID] = true
			recipientIDs = append(recipientIDs, u.ID)
		}
	}

	if len(in.LabelIDs) > 0 {
		owned, err := s.labels.FindOwned(ctx, senderID, in.LabelIDs)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if len(owned) != len(in.LabelIDs) {
			return nil, apperr.Validation("Unknown label")
		}
	}

	e := &model.Email{
		SenderID: senderID,
		Subject:  in.Subject,
		Body:     util.SanitizeBody(in.Body),
	}

	if err := s.emails.Create(ctx, e, recipientIDs, in.LabelIDs, in.Attachments); err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.IncrementEmailSent("user")
	return e, nil
}

// Search returns the caller's mail narrowed by the criteria.
func (s *Service) Search(ctx context.Context, userID int64, f model.EmailFilter) ([]model.Email, error) {
	emails, err := s.emails.Search(ctx, userID, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return emails, nil
}

// Labels returns the caller's labels, usable as label_ids on send.
func (s *Service) Labels(ctx context.Context, userID int64) ([]model.Label, error) {
	labels, err := s.labels.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return labels, nil
}

// UpdateFlags applies a partial read/star/trash update to one email.
func (s *Service) UpdateFlags(ctx context.Context, userID, emailID int64, f model.FlagUpdate) (*model.Email, error) {
	if f.IsRead == nil && f.IsStarred == nil && f.IsTrashed == nil {
		return nil, apperr.Validation("No flags supplied")
	}

	e, err := s.emails.UpdateFlags(ctx, userID, emailID, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if e == nil {
		return nil, apperr.NotFound("Email not found")
	}
	return e, nil
}
