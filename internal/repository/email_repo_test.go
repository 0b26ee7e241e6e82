package repository

import (
	"strings"
	"testing"
	"time"

	"gotmail/internal/model"
)

func TestBuildSearchQueryBase(t *testing.T) {
	query, args := buildSearchQuery(7, model.EmailFilter{})

	if !strings.Contains(query, "e.is_trashed = FALSE") {
		t.Fatal("trashed mail must always be excluded")
	}
	if !strings.Contains(query, "e.sender_id = $1") || !strings.Contains(query, "er.user_id = $1") {
		t.Fatal("base scope must cover sent and received mail")
	}
	if !strings.Contains(query, "ORDER BY e.sent_at DESC") {
		t.Fatal("results must be newest first")
	}
	if strings.Contains(query, "DISTINCT") {
		t.Fatal("deduplication should come from EXISTS, not DISTINCT")
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSearchQueryFreeText(t *testing.T) {
	query, args := buildSearchQuery(7, model.EmailFilter{Query: "invoice"})

	for _, col := range []string{"e.subject ILIKE $2", "e.body ILIKE $2", "su.phone_number ILIKE $2"} {
		if !strings.Contains(query, col) {
			t.Fatalf("free text should match %s", col)
		}
	}
	if len(args) != 2 || args[1] != "%invoice%" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSearchQueryEscapesWildcards(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"100%", `%100\%%`},
		{"under_score", `%under\_score%`},
		{`back\slash`, `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, args := buildSearchQuery(7, model.EmailFilter{Query: tt.query})
			if args[1] != tt.want {
				t.Fatalf("pattern = %q, want %q", args[1], tt.want)
			}
		})
	}
}

func TestBuildSearchQueryDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args := buildSearchQuery(7, model.EmailFilter{Start: &start, End: &end})
	if !strings.Contains(query, "e.sent_at BETWEEN $2 AND $3") {
		t.Fatalf("missing range clause in:\n%s", query)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSearchQueryStatus(t *testing.T) {
	query, _ := buildSearchQuery(7, model.EmailFilter{Unread: true})
	if !strings.Contains(query, "e.is_read = FALSE") {
		t.Fatal("unread filter missing")
	}

	query, _ = buildSearchQuery(7, model.EmailFilter{Starred: true})
	if !strings.Contains(query, "e.is_starred = TRUE") {
		t.Fatal("starred filter missing")
	}
}

func TestBuildSearchQueryLabelAndAttachments(t *testing.T) {
	query, args := buildSearchQuery(7, model.EmailFilter{Label: "Work", HasAttachments: true})

	if !strings.Contains(query, "l.name = $2") {
		t.Fatalf("label clause missing in:\n%s", query)
	}
	if !strings.Contains(query, "EXISTS (SELECT 1 FROM attachments a WHERE a.email_id = e.id)") {
		t.Fatal("attachment presence must use EXISTS")
	}
	if len(args) != 2 || args[1] != "Work" {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildSearchQueryComposed(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, args := buildSearchQuery(7, model.EmailFilter{
		Query:          "report",
		Start:          &start,
		End:            &end,
		Unread:         true,
		Label:          "Important",
		HasAttachments: true,
	})

	// All criteria narrow with AND; placeholder numbering stays in step
	// with the args slice.
	if !strings.Contains(query, "ILIKE $2") {
		t.Fatalf("free text placeholder off:\n%s", query)
	}
	if !strings.Contains(query, "BETWEEN $3 AND $4") {
		t.Fatalf("range placeholders off:\n%s", query)
	}
	if !strings.Contains(query, "l.name = $5") {
		t.Fatalf("label placeholder off:\n%s", query)
	}
	if len(args) != 5 {
		t.Fatalf("args = %v", args)
	}
	if got := strings.Count(query, "AND "); got < 5 {
		t.Fatalf("expected every criterion to narrow with AND, found %d", got)
	}
}
