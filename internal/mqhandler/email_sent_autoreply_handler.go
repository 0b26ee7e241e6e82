package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gotmail/internal/model"
	"gotmail/internal/mq"
	"gotmail/pkg/metrics"
)

type SettingsReader interface {
	FindByUserID(ctx context.Context, userID int64) (*model.UserSettings, error)
}

type EmailWriter interface {
	Create(ctx context.Context, e *model.Email, recipientIDs []int64, labelIDs []int64, attachments []model.Attachment) error
}

type DedupLock interface {
	AcquireOnce(ctx context.Context, handler, key string) bool
}

// EmailSentAutoReplyHandler consumes email.sent events and generates
// automatic replies for recipients whose auto-reply window is active.
type EmailSentAutoReplyHandler struct {
	settings SettingsReader
	emails   EmailWriter
	deduper  DedupLock
	logger   *zap.Logger
	now      func() time.Time
}

func NewEmailSentAutoReplyHandler(settings SettingsReader, emails EmailWriter, deduper DedupLock, logger *zap.Logger) *EmailSentAutoReplyHandler {
	return &EmailSentAutoReplyHandler{
		settings: settings,
		emails:   emails,
		deduper:  deduper,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *EmailSentAutoReplyHandler) HandleEmailSent(ctx context.Context, raw json.RawMessage) error {
	var p mq.EmailSentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal email sent payload", zap.Error(err))
		return err
	}

	// Never answer an automatic reply, or two mailboxes with active
	// windows would bounce mail between each other forever.
	if p.IsAutoReply {
		return nil
	}

	for _, recipientID := range p.RecipientIDs {
		if err := h.replyFor(ctx, &p, recipientID); err != nil {
			return err
		}
	}

	return nil
}

func (h *EmailSentAutoReplyHandler) replyFor(ctx context.Context, p *mq.EmailSentPayload, recipientID int64) error {
	dedupKey := fmt.Sprintf("%d:%d", p.EmailID, recipientID)
	if !h.deduper.AcquireOnce(ctx, "autoreply", dedupKey) {
		h.logger.Debug("Duplicate email.sent delivery, skipping",
			zap.Int64("email_id", p.EmailID),
			zap.Int64("recipient_id", recipientID),
		)
		return nil
	}

	settings, err := h.settings.FindByUserID(ctx, recipientID)
	if err != nil {
		return err
	}
	if settings == nil || !settings.AutoReplyActiveAt(h.now()) {
		return nil
	}

	body := settings.AutoReplyMessage
	if body == "" {
		body = "I am currently away and will reply when I return."
	}

	reply := &model.Email{
		SenderID:    recipientID,
		Subject:     "Auto-Reply: " + p.Subject,
		Body:        body,
		IsAutoReply: true,
	}

	if err := h.emails.Create(ctx, reply, []int64{p.SenderID}, nil, nil); err != nil {
		h.logger.Error("Failed to create auto-reply",
			zap.Int64("email_id", p.EmailID),
			zap.Int64("recipient_id", recipientID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Auto-reply created",
		zap.Int64("email_id", p.EmailID),
		zap.Int64("recipient_id", recipientID),
	)
	metrics.IncrementEmailSent("auto_reply")

	return nil
}
