package twofactor

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/internal/sms"
	"gotmail/internal/util"
	"gotmail/pkg/metrics"
)

const codeTTL = 5 * time.Minute

// CodeStore keeps issued code hashes. Take must consume the stored hash
// so a code verifies at most once; it returns "" when nothing is pending.
type CodeStore interface {
	Save(ctx context.Context, userID int64, hash string, ttl time.Duration) error
	Take(ctx context.Context, userID int64) (string, error)
}

type ProfileStore interface {
	SetTwoFactorEnabled(ctx context.Context, userID int64, enabled bool) error
}

type Service struct {
	codes    CodeStore
	profiles ProfileStore
	sender   sms.Sender
}

func NewService(codes CodeStore, profiles ProfileStore, sender sms.Sender) *Service {
	return &Service{
		codes:    codes,
		profiles: profiles,
		sender:   sender,
	}
}

// Setup issues a fresh 6-digit code, stores its hash with a short TTL,
// and delivers it out-of-band. The code never appears in the response.
func (s *Service) Setup(ctx context.Context, user *model.User) error {
	code, err := util.NewVerificationCode()
	if err != nil {
		return apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), 8)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.codes.Save(ctx, user.ID, string(hash), codeTTL); err != nil {
		return apperr.Internal(err)
	}

	message := fmt.Sprintf("Your GotMail verification code is %s", code)
	if err := s.sender.Send(ctx, user.PhoneNumber, message); err != nil {
		return apperr.Internal(err)
	}

	metrics.IncrementTwoFactor("issued")
	return nil
}

// Verify compares the submitted code against the stored hash and enables
// two-factor on the profile on a match. The stored code is single-use:
// it is consumed before the comparison, pass or fail.
func (s *Service) Verify(ctx context.Context, user *model.User, code string) error {
	if !validCode(code) {
		return apperr.Validation("Verification code must be 6 digits")
	}

	hash, err := s.codes.Take(ctx, user.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if hash == "" {
		metrics.IncrementTwoFactor("rejected")
		return apperr.Validation("Verification code expired or not requested")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		metrics.IncrementTwoFactor("rejected")
		return apperr.Validation("Invalid verification code")
	}

	if err := s.profiles.SetTwoFactorEnabled(ctx, user.ID, true); err != nil {
		return apperr.Internal(err)
	}

	metrics.IncrementTwoFactor("verified")
	return nil
}

func validCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
