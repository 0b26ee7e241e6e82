package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gotmail/internal/model"
	"gotmail/internal/mq"
	"gotmail/internal/outbox"
)

type UserRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
}

func NewUserRepository(db *pgxpool.Pool, ob *outbox.Repository) *UserRepository {
	return &UserRepository{db: db, outbox: ob}
}

// CreateAccount creates the user together with its profile, default
// settings, the three default labels, and a user.registered outbox event,
// all in one transaction. A failure at any step leaves no partial account.
func (r *UserRepository) CreateAccount(ctx context.Context, u *model.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO users (phone_number, password_hash, first_name, last_name, email, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `, u.PhoneNumber, u.PasswordHash, u.FirstName, u.LastName, u.Email).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO user_profiles (user_id) VALUES ($1)
    `, u.ID)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO user_settings (user_id) VALUES ($1)
    `, u.ID)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}

	for _, l := range model.DefaultLabels() {
		_, err = tx.Exec(ctx, `
            INSERT INTO labels (user_id, name, color) VALUES ($1, $2, $3)
        `, u.ID, l.Name, l.Color)
		if err != nil {
			return fmt.Errorf("failed to insert label %q: %w", l.Name, err)
		}
	}

	event, err := outbox.NewEvent(mq.RoutingKeyUserRegistered, mq.UserRegisteredPayload{
		UserID:      u.ID,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	})
	if err != nil {
		return err
	}
	if err := r.outbox.InsertEvent(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// FindByPhone returns the user with the given phone number, or nil.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, "phone_number = $1", phone)
}

// FindByEmail returns the user with the given email address, or nil.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

// FindByIdentifier looks a user up by phone number or email address.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return r.findOne(ctx, "phone_number = $1 OR email = $1", identifier)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `
        SELECT id, phone_number, password_hash, first_name, last_name, email, created_at
        FROM users
        WHERE ` + where

	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
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

// UpdateNames applies a partial update of the user's public fields.
func (r *UserRepository) UpdateNames(ctx context.Context, id int64, firstName, lastName, email *string) error {
	query := `
        UPDATE users
        SET first_name = COALESCE($2, first_name),
            last_name  = COALESCE($3, last_name),
            email      = COALESCE($4, email)
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id, firstName, lastName, email)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	return err
}
