package auth

import (
	"context"
	"strings"
	"time"
	"unicode"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/internal/util"
)

// UserStore is the subset of the user repository the service needs.
// Lookups return (nil, nil) when no row matches.
type UserStore interface {
	CreateAccount(ctx context.Context, u *model.User) error
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	FindActiveByToken(ctx context.Context, token string) (*model.User, error)
	RevokeByToken(ctx context.Context, token string) error
	RevokeOthers(ctx context.Context, userID int64, keepToken string) error
}

type Service struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewService(users UserStore, sessions SessionStore, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

type RegisterInput struct {
	PhoneNumber string
	Password    string
	FirstName   string
	LastName    string
	Email       string
}

// Register creates a new account and logs the caller in straight away.
// Returns the user and the raw session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if !validPhoneNumber(in.PhoneNumber) {
		return nil, "", apperr.Validation("Invalid phone number")
	}

	existing, err := s.users.FindByPhone(ctx, in.PhoneNumber)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if existing != nil {
		return nil, "", apperr.Duplicate("Phone number already registered")
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	u := &model.User{
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
	}

	if err := s.users.CreateAccount(ctx, u); err != nil {
		return nil, "", apperr.Internal(err)
	}

	token, err := s.mintSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Login verifies credentials and mints a fresh session token. The error
// is identical whether the identifier is unknown or the password wrong.
func (s *Service) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	u, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if u == nil || !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.Validation("Invalid credentials")
	}

	token, err := s.mintSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Logout revokes the session behind the token. It never fails over
// missing session state: logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.RevokeByToken(ctx, token); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ValidateToken returns the user behind a live session token.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.AuthFailed("Invalid or expired token")
	}
	u, err := s.sessions.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.AuthFailed("Invalid or expired token")
	}
	return u, nil
}

// ChangePassword swaps the password hash and revokes every other live
// session of the user.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, currentToken string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if u == nil {
		return apperr.NotFound("User not found")
	}
	if !util.CheckPassword(oldPassword, u.PasswordHash) {
		return apperr.Validation("Invalid credentials")
	}
	if len(newPassword) < 8 {
		return apperr.Validation("Password must be at least 8 characters")
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal(err)
	}
	if err := s.sessions.RevokeOthers(ctx, userID, currentToken); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) mintSession(ctx context.Context, userID int64) (string, error) {
	token, err := util.NewSessionToken()
	if err != nil {
		return "", apperr.Internal(err)
	}

	now := time.Now()
	session := &model.Session{
		UserID:    userID,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", apperr.Internal(err)
	}

	return token, nil
}

// validPhoneNumber accepts 10 to 15 digits, with an optional leading +.
func validPhoneNumber(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
