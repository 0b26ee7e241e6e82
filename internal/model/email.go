package model

import "time"

type Email struct {
	ID          int64        `json:"id"`
	SenderID    int64        `json:"sender_id"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	SentAt      time.Time    `json:"sent_at"`
	IsRead      bool         `json:"is_read"`
	IsStarred   bool         `json:"is_starred"`
	IsTrashed   bool         `json:"is_trashed"`
	IsAutoReply bool         `json:"is_auto_reply"`
	Recipients  []int64      `json:"recipients,omitempty"`
	Labels      []Label      `json:"labels,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	ID       int64  `json:"id"`
	EmailID  int64  `json:"-"`
	FileRef  string `json:"file_ref"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// EmailFilter is the typed search criteria parsed once at the HTTP
// boundary. Nil pointer fields mean "not filtered".
type EmailFilter struct {
	Query          string
	Start          *time.Time
	End            *time.Time
	Unread         bool
	Starred        bool
	Label          string
	HasAttachments bool
}

// FlagUpdate is a partial update to an email's status flags.
type FlagUpdate struct {
	IsRead    *bool `json:"is_read"`
	IsStarred *bool `json:"is_starred"`
	IsTrashed *bool `json:"is_trashed"`
}
