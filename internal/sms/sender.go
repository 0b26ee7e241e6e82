package sms

import (
	"context"

	"go.uber.org/zap"

	"gotmail/pkg/circuitbreaker"
)

// Sender delivers a short message to a phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// LogSender is a delivery stub: it logs instead of sending. Real SMS
// delivery is an external collaborator this service does not own.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, phoneNumber, message string) error {
	s.logger.Info("SMS delivery stub",
		zap.String("phone_number", phoneNumber),
		zap.String("message", message),
	)
	return nil
}

// BreakerSender wraps a Sender with a circuit breaker, so a flapping
// delivery provider fails fast instead of piling up requests.
type BreakerSender struct {
	inner   Sender
	breaker *circuitbreaker.CircuitBreaker
}

func NewBreakerSender(inner Sender) *BreakerSender {
	return &BreakerSender{
		inner:   inner,
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

func (s *BreakerSender) Send(ctx context.Context, phoneNumber, message string) error {
	return s.breaker.Execute(func() error {
		return s.inner.Send(ctx, phoneNumber, message)
	})
}
