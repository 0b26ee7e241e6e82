package mailbox

import (
	"net/url"
	"time"

	"gotmail/internal/model"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseFilter turns raw query parameters into typed search criteria.
// The loose inputs are resolved once, here, and nowhere else:
//   - the date range applies only when both bounds are present and parse;
//     a lone bound is silently ignored
//   - status accepts "unread" and "starred"; anything else is ignored,
//     not rejected
//   - has_attachments accepts "true" and "1"
func ParseFilter(params url.Values) model.EmailFilter {
	f := model.EmailFilter{
		Query: params.Get("q"),
		Label: params.Get("label"),
	}

	start, okStart := parseDate(params.Get("start_date"))
	end, okEnd := parseDate(params.Get("end_date"))
	if okStart && okEnd {
		f.Start = &start
		f.End = &end
	}

	switch params.Get("status") {
	case "unread":
		f.Unread = true
	case "starred":
		f.Starred = true
	}

	switch params.Get("has_attachments") {
	case "true", "1":
		f.HasAttachments = true
	}

	return f
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
