package settings

import (
	"context"
	"testing"
	"time"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
)

type fakeStore struct {
	settings map[int64]*model.UserSettings
	updates  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: map[int64]*model.UserSettings{}}
}

func (f *fakeStore) GetOrCreate(ctx context.Context, userID int64) (*model.UserSettings, error) {
	if s, ok := f.settings[userID]; ok {
		cp := *s
		return &cp, nil
	}
	s := &model.UserSettings{
		UserID:     userID,
		FontFamily: "sans-serif",
		FontSize:   14,
	}
	f.settings[userID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Update(ctx context.Context, s *model.UserSettings) error {
	f.updates++
	cp := *s
	f.settings[s.UserID] = &cp
	return nil
}

func newTestService(store *fakeStore, now time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc
}

func boolPtr(b bool) *bool          { return &b }
func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func TestGetCreatesDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	s, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if s.FontFamily != "sans-serif" || s.FontSize != 14 {
		t.Fatalf("unexpected defaults: %q/%d", s.FontFamily, s.FontSize)
	}
	if s.AutoReplyEnabled || s.DarkMode {
		t.Fatal("auto-reply and dark mode should default off")
	}
}

func TestUpdateAutoReplyRejectsInvertedWindow(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	_, err := svc.UpdateAutoReply(context.Background(), 7, AutoReplyUpdate{
		Enabled:   boolPtr(true),
		StartDate: timePtr(start),
		EndDate:   timePtr(end),
	})
	if apperr.StatusCode(err) != 400 {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.updates != 0 {
		t.Fatal("nothing should be persisted when validation fails")
	}
}

func TestUpdateAutoReplyPartial(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateAutoReply(context.Background(), 7, AutoReplyUpdate{
		Enabled:   boolPtr(true),
		StartDate: timePtr(start),
		EndDate:   timePtr(end),
		Message:   strPtr("Out of office"),
	})
	if err != nil {
		t.Fatalf("UpdateAutoReply() failed: %v", err)
	}

	// Changing only the message must leave the window intact.
	got, err := svc.UpdateAutoReply(context.Background(), 7, AutoReplyUpdate{
		Message: strPtr("Back on the 15th"),
	})
	if err != nil {
		t.Fatalf("UpdateAutoReply() failed: %v", err)
	}
	if got.AutoReplyMessage != "Back on the 15th" {
		t.Fatalf("message = %q", got.AutoReplyMessage)
	}
	if !got.AutoReplyEnabled || got.AutoReplyStartDate == nil || !got.AutoReplyStartDate.Equal(start) {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestToggleAutoReplyDefaultsWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestService(store, now)

	got, err := svc.ToggleAutoReply(context.Background(), 7)
	if err != nil {
		t.Fatalf("ToggleAutoReply() failed: %v", err)
	}
	if !got.AutoReplyEnabled {
		t.Fatal("toggle from off should enable")
	}
	if got.AutoReplyStartDate == nil || !got.AutoReplyStartDate.Equal(now) {
		t.Fatalf("start date should default to now, got %v", got.AutoReplyStartDate)
	}
	want := now.Add(30 * 24 * time.Hour)
	if got.AutoReplyEndDate == nil || !got.AutoReplyEndDate.Equal(want) {
		t.Fatalf("end date should default to start+30d, got %v", got.AutoReplyEndDate)
	}
}

func TestToggleAutoReplyDefaultsEndFromNow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestService(store, now)

	// A stale start bound with no end bound: the end must default from
	// now, not from the start, or the window is over before it begins.
	staleStart := now.Add(-60 * 24 * time.Hour)
	_, err := svc.UpdateAutoReply(context.Background(), 7, AutoReplyUpdate{
		StartDate: timePtr(staleStart),
	})
	if err != nil {
		t.Fatalf("UpdateAutoReply() failed: %v", err)
	}

	got, err := svc.ToggleAutoReply(context.Background(), 7)
	if err != nil {
		t.Fatalf("ToggleAutoReply() failed: %v", err)
	}
	if !got.AutoReplyStartDate.Equal(staleStart) {
		t.Fatalf("stored start bound must survive, got %v", got.AutoReplyStartDate)
	}
	want := now.Add(30 * 24 * time.Hour)
	if got.AutoReplyEndDate == nil || !got.AutoReplyEndDate.Equal(want) {
		t.Fatalf("end date = %v, want now+30d = %v", got.AutoReplyEndDate, want)
	}
	if !got.AutoReplyActiveAt(now) {
		t.Fatal("window should be live immediately after enabling")
	}
}

func TestToggleAutoReplyKeepsExistingWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestService(store, now)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateAutoReply(context.Background(), 7, AutoReplyUpdate{
		StartDate: timePtr(start),
		EndDate:   timePtr(end),
	})
	if err != nil {
		t.Fatalf("UpdateAutoReply() failed: %v", err)
	}

	got, err := svc.ToggleAutoReply(context.Background(), 7)
	if err != nil {
		t.Fatalf("ToggleAutoReply() failed: %v", err)
	}
	if !got.AutoReplyStartDate.Equal(start) || !got.AutoReplyEndDate.Equal(end) {
		t.Fatal("existing window bounds must not be overwritten by the toggle")
	}
}

func TestToggleAutoReplyDisables(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	if _, err := svc.ToggleAutoReply(context.Background(), 7); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	got, err := svc.ToggleAutoReply(context.Background(), 7)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if got.AutoReplyEnabled {
		t.Fatal("second toggle should disable")
	}
	if got.AutoReplyStartDate == nil || got.AutoReplyEndDate == nil {
		t.Fatal("disabling must not clear the stored window")
	}
}

func TestUpdateFont(t *testing.T) {
	tests := []struct {
		name    string
		family  *string
		size    *int
		wantErr bool
	}{
		{"valid family and size", strPtr("monospace"), intPtr(16), false},
		{"family only", strPtr("georgia"), nil, false},
		{"size only", nil, intPtr(12), false},
		{"unknown family", strPtr("comic-sans"), nil, true},
		{"size too small", nil, intPtr(7), true},
		{"size too large", nil, intPtr(73), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestService(store, time.Now())

			got, err := svc.UpdateFont(context.Background(), 7, tt.family, tt.size)
			if tt.wantErr {
				if apperr.StatusCode(err) != 400 {
					t.Fatalf("expected validation error, got %v", err)
				}
				if store.updates != 0 {
					t.Fatal("nothing should be persisted when validation fails")
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateFont() failed: %v", err)
			}
			if tt.family != nil && got.FontFamily != *tt.family {
				t.Fatalf("family = %q, want %q", got.FontFamily, *tt.family)
			}
			if tt.size != nil && got.FontSize != *tt.size {
				t.Fatalf("size = %d, want %d", got.FontSize, *tt.size)
			}
		})
	}
}

func TestSetDarkMode(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	got, err := svc.SetDarkMode(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("SetDarkMode() failed: %v", err)
	}
	if !got.DarkMode {
		t.Fatal("dark mode should be on")
	}

	got, err = svc.SetDarkMode(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("SetDarkMode() failed: %v", err)
	}
	if got.DarkMode {
		t.Fatal("dark mode should be off")
	}
}
