package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
	"gotmail/internal/mq"
	"gotmail/internal/outbox"
)

type EmailRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
}

func NewEmailRepository(db *pgxpool.Pool, ob *outbox.Repository) *EmailRepository {
	return &EmailRepository{db: db, outbox: ob}
}

// Create stores the email with its recipients, labels, and attachments,
// plus an email.sent outbox event, in one transaction.
func (r *EmailRepository) Create(ctx context.Context, e *model.Email, recipientIDs []int64, labelIDs []int64, attachments []model.Attachment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO emails (sender_id, subject, body, sent_at, is_auto_reply)
        VALUES ($1, $2, $3, NOW(), $4)
        RETURNING id, sent_at
    `, e.SenderID, e.Subject, e.Body, e.IsAutoReply).Scan(&e.ID, &e.SentAt)
	if err != nil {
		return fmt.Errorf("failed to insert email: %w", err)
	}

	for _, rid := range recipientIDs {
		_, err = tx.Exec(ctx, `
            INSERT INTO email_recipients (email_id, user_id) VALUES ($1, $2)
        `, e.ID, rid)
		if err != nil {
			return fmt.Errorf("failed to insert recipient: %w", err)
		}
	}
	e.Recipients = recipientIDs

	for _, lid := range labelIDs {
		_, err = tx.Exec(ctx, `
            INSERT INTO email_labels (email_id, label_id) VALUES ($1, $2)
        `, e.ID, lid)
		if err != nil {
			return fmt.Errorf("failed to insert email label: %w", err)
		}
	}

	for i := range attachments {
		a := &attachments[i]
		a.EmailID = e.ID
		err = tx.QueryRow(ctx, `
            INSERT INTO attachments (email_id, file_ref, filename, size)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `, a.EmailID, a.FileRef, a.Filename, a.Size).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("failed to insert attachment: %w", err)
		}
	}
	e.Attachments = attachments

	event, err := outbox.NewEvent(mq.RoutingKeyEmailSent, mq.EmailSentPayload{
		EmailID:      e.ID,
		SenderID:     e.SenderID,
		RecipientIDs: recipientIDs,
		Subject:      e.Subject,
		SentAt:       e.SentAt,
		IsAutoReply:  e.IsAutoReply,
	})
	if err != nil {
		return err
	}
	if err := r.outbox.InsertEvent(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *EmailRepository) FindByID(ctx context.Context, id int64) (*model.Email, error) {
	var e model.Email
	err := r.db.QueryRow(ctx, `
        SELECT id, sender_id, subject, body, sent_at, is_read, is_starred, is_trashed, is_auto_reply
        FROM emails
        WHERE id = $1
    `, id).Scan(
		&e.ID, &e.SenderID, &e.Subject, &e.Body, &e.SentAt,
		&e.IsRead, &e.IsStarred, &e.IsTrashed, &e.IsAutoReply,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Search returns the user's mail narrowed by the filter, newest first.
func (r *EmailRepository) Search(ctx context.Context, userID int64, f model.EmailFilter) ([]model.Email, error) {
	query, args := buildSearchQuery(userID, f)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []model.Email{}
	for rows.Next() {
		var e model.Email
		err := rows.Scan(
			&e.ID, &e.SenderID, &e.Subject, &e.Body, &e.SentAt,
			&e.IsRead, &e.IsStarred, &e.IsTrashed, &e.IsAutoReply,
		)
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

// buildSearchQuery composes the search SQL from the typed filter. The
// base scope is mail the user sent or received, never trashed mail;
// every supplied criterion narrows it with AND. Attachment presence uses
// EXISTS, so multi-attachment emails cannot appear twice.
func buildSearchQuery(userID int64, f model.EmailFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
        SELECT e.id, e.sender_id, e.subject, e.body, e.sent_at,
               e.is_read, e.is_starred, e.is_trashed, e.is_auto_reply
        FROM emails e
        JOIN users su ON su.id = e.sender_id
        WHERE (e.sender_id = $1 OR EXISTS (
                SELECT 1 FROM email_recipients er
                WHERE er.email_id = e.id AND er.user_id = $1))
          AND e.is_trashed = FALSE`)
	args := []any{userID}

	if f.Query != "" {
		args = append(args, "%"+escapeLike(f.Query)+"%")
		n := len(args)
		fmt.Fprintf(&sb, `
          AND (e.subject ILIKE $%d OR e.body ILIKE $%d OR su.phone_number ILIKE $%d)`, n, n, n)
	}

	if f.Start != nil && f.End != nil {
		args = append(args, *f.Start, *f.End)
		fmt.Fprintf(&sb, `
          AND e.sent_at BETWEEN $%d AND $%d`, len(args)-1, len(args))
	}

	if f.Unread {
		sb.WriteString(`
          AND e.is_read = FALSE`)
	}
	if f.Starred {
		sb.WriteString(`
          AND e.is_starred = TRUE`)
	}

	if f.Label != "" {
		args = append(args, f.Label)
		fmt.Fprintf(&sb, `
          AND EXISTS (
                SELECT 1 FROM email_labels el
                JOIN labels l ON l.id = el.label_id
                WHERE el.email_id = e.id AND l.name = $%d)`, len(args))
	}

	if f.HasAttachments {
		sb.WriteString(`
          AND EXISTS (SELECT 1 FROM attachments a WHERE a.email_id = e.id)`)
	}

	sb.WriteString(`
        ORDER BY e.sent_at DESC`)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a search for "100%"
// matches the literal text instead of everything.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// UpdateFlags applies a partial flag update, restricted to mail the user
// sent or received. Returns nil when no such email exists.
func (r *EmailRepository) UpdateFlags(ctx context.Context, userID, emailID int64, f model.FlagUpdate) (*model.Email, error) {
	var e model.Email
	err := r.db.QueryRow(ctx, `
        UPDATE emails e
        SET is_read    = COALESCE($3, is_read),
            is_starred = COALESCE($4, is_starred),
            is_trashed = COALESCE($5, is_trashed)
        WHERE e.id = $2
          AND (e.sender_id = $1 OR EXISTS (
                SELECT 1 FROM email_recipients er
                WHERE er.email_id = e.id AND er.user_id = $1))
        RETURNING id, sender_id, subject, body, sent_at, is_read, is_starred, is_trashed, is_auto_reply
    `, userID, emailID, f.IsRead, f.IsStarred, f.IsTrashed).Scan(
		&e.ID, &e.SenderID, &e.Subject, &e.Body, &e.SentAt,
		&e.IsRead, &e.IsStarred, &e.IsTrashed, &e.IsAutoReply,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
