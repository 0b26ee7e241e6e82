package mq

import "time"

// Routing keys published through the events exchange.
const (
	RoutingKeyUserRegistered = "user.registered"
	RoutingKeyEmailSent      = "email.sent"
)

type UserRegisteredPayload struct {
	UserID      int64  `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type EmailSentPayload struct {
	EmailID      int64     `json:"email_id"`
	SenderID     int64     `json:"sender_id"`
	RecipientIDs []int64   `json:"recipient_ids"`
	Subject      string    `json:"subject"`
	SentAt       time.Time `json:"sent_at"`
	IsAutoReply  bool      `json:"is_auto_reply"`
}
