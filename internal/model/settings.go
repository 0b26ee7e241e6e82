package model

import "time"

type UserSettings struct {
	ID                 int64      `json:"-"`
	UserID             int64      `json:"-"`
	AutoReplyEnabled   bool       `json:"auto_reply_enabled"`
	AutoReplyStartDate *time.Time `json:"auto_reply_start_date"`
	AutoReplyEndDate   *time.Time `json:"auto_reply_end_date"`
	AutoReplyMessage   string     `json:"auto_reply_message"`
	FontFamily         string     `json:"font_family"`
	FontSize           int        `json:"font_size"`
	DarkMode           bool       `json:"dark_mode"`
}

// AutoReplyActiveAt reports whether the auto-reply window covers t.
func (s *UserSettings) AutoReplyActiveAt(t time.Time) bool {
	if !s.AutoReplyEnabled {
		return false
	}
	if s.AutoReplyStartDate == nil || s.AutoReplyEndDate == nil {
		return false
	}
	return !t.Before(*s.AutoReplyStartDate) && !t.After(*s.AutoReplyEndDate)
}

type Label struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// DefaultLabels are created for every new account at registration.
func DefaultLabels() []Label {
	return []Label{
		{Name: "Important", Color: "#FF0000"},
		{Name: "Personal", Color: "#00FF00"},
		{Name: "Work", Color: "#0000FF"},
	}
}
