package mailbox

import (
	"net/url"
	"testing"
	"time"
)

func TestParseFilterDateRange(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		wantRange bool
	}{
		{
			"both bounds",
			url.Values{"start_date": {"2026-01-01"}, "end_date": {"2026-02-01"}},
			true,
		},
		{
			"both bounds RFC3339",
			url.Values{"start_date": {"2026-01-01T00:00:00Z"}, "end_date": {"2026-02-01T12:30:00Z"}},
			true,
		},
		{"start only is ignored", url.Values{"start_date": {"2026-01-01"}}, false},
		{"end only is ignored", url.Values{"end_date": {"2026-02-01"}}, false},
		{
			"unparseable bound drops the range",
			url.Values{"start_date": {"January 1st"}, "end_date": {"2026-02-01"}},
			false,
		},
		{"no bounds", url.Values{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilter(tt.params)
			got := f.Start != nil && f.End != nil
			if got != tt.wantRange {
				t.Fatalf("range applied = %v, want %v", got, tt.wantRange)
			}
			if !got && (f.Start != nil || f.End != nil) {
				t.Fatal("a lone bound must not leak into the filter")
			}
		})
	}
}

func TestParseFilterDateValues(t *testing.T) {
	f := ParseFilter(url.Values{
		"start_date": {"2026-01-01"},
		"end_date":   {"2026-02-01"},
	})
	wantStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !f.Start.Equal(wantStart) || !f.End.Equal(wantEnd) {
		t.Fatalf("parsed range [%v, %v]", f.Start, f.End)
	}
}

func TestParseFilterStatus(t *testing.T) {
	tests := []struct {
		status      string
		wantUnread  bool
		wantStarred bool
	}{
		{"unread", true, false},
		{"starred", false, true},
		{"archived", false, false},
		{"UNREAD", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			f := ParseFilter(url.Values{"status": {tt.status}})
			if f.Unread != tt.wantUnread || f.Starred != tt.wantStarred {
				t.Fatalf("unread=%v starred=%v, want %v/%v",
					f.Unread, f.Starred, tt.wantUnread, tt.wantStarred)
			}
		})
	}
}

func TestParseFilterHasAttachments(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		if !ParseFilter(url.Values{"has_attachments": {v}}).HasAttachments {
			t.Fatalf("has_attachments=%q should enable the filter", v)
		}
	}
	for _, v := range []string{"false", "0", "yes", ""} {
		if ParseFilter(url.Values{"has_attachments": {v}}).HasAttachments {
			t.Fatalf("has_attachments=%q should not enable the filter", v)
		}
	}
}

func TestParseFilterPassthrough(t *testing.T) {
	f := ParseFilter(url.Values{"q": {"invoice"}, "label": {"Work"}})
	if f.Query != "invoice" {
		t.Fatalf("query = %q", f.Query)
	}
	if f.Label != "Work" {
		t.Fatalf("label = %q", f.Label)
	}
}
