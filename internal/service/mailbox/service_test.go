package mailbox

import (
	"context"
	"strings"
	"testing"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
)

type fakeEmailStore struct {
	created      []*model.Email
	recipientIDs [][]int64
	flags        map[int64]*model.Email
}

func (f *fakeEmailStore) Create(ctx context.Context, e *model.Email, recipientIDs, labelIDs []int64, attachments []model.Attachment) error {
	e.ID = int64(len(f.created) + 1)
	f.created = append(f.created, e)
	f.recipientIDs = append(f.recipientIDs, recipientIDs)
	return nil
}

func (f *fakeEmailStore) Search(ctx context.Context, userID int64, filter model.EmailFilter) ([]model.Email, error) {
	return nil, nil
}

func (f *fakeEmailStore) UpdateFlags(ctx context.Context, userID, emailID int64, u model.FlagUpdate) (*model.Email, error) {
	e, ok := f.flags[emailID]
	if !ok {
		return nil, nil
	}
	if u.IsRead != nil {
		e.IsRead = *u.IsRead
	}
	if u.IsStarred != nil {
		e.IsStarred = *u.IsStarred
	}
	if u.IsTrashed != nil {
		e.IsTrashed = *u.IsTrashed
	}
	return e, nil
}

type fakeDirectory struct {
	byEmail map[string]*model.User
}

func (f *fakeDirectory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

type fakeLabelStore struct {
	owned map[int64]bool
}

func (f *fakeLabelStore) ListByUser(ctx context.Context, userID int64) ([]model.Label, error) {
	var out []model.Label
	for id := range f.owned {
		out = append(out, model.Label{ID: id, UserID: userID})
	}
	return out, nil
}

func (f *fakeLabelStore) FindOwned(ctx context.Context, userID int64, ids []int64) ([]model.Label, error) {
	var out []model.Label
	for _, id := range ids {
		if f.owned[id] {
			out = append(out, model.Label{ID: id, UserID: userID})
		}
	}
	return out, nil
}

func newTestMailbox() (*Service, *fakeEmailStore) {
	emails := &fakeEmailStore{flags: map[int64]*model.Email{}}
	dir := &fakeDirectory{byEmail: map[string]*model.User{
		"bob@gotmail.test":   {ID: 2, Email: "bob@gotmail.test"},
		"carol@gotmail.test": {ID: 3, Email: "carol@gotmail.test"},
	}}
	labels := &fakeLabelStore{owned: map[int64]bool{10: true, 11: true}}
	return NewService(emails, dir, labels), emails
}

func TestSendValidation(t *testing.T) {
	tests := []struct {
		name string
		in   SendInput
	}{
		{"no recipients", SendInput{Subject: "hi"}},
		{"blank subject", SendInput{To: []string{"bob@gotmail.test"}, Subject: "   "}},
		{"unknown recipient", SendInput{To: []string{"nobody@gotmail.test"}, Subject: "hi"}},
		{"unknown label", SendInput{To: []string{"bob@gotmail.test"}, Subject: "hi", LabelIDs: []int64{99}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, emails := newTestMailbox()
			_, err := svc.Send(context.Background(), 1, tt.in)
			if apperr.StatusCode(err) != 400 {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(emails.created) != 0 {
				t.Fatal("nothing should be stored on a validation failure")
			}
		})
	}
}

func TestSendSanitizesBody(t *testing.T) {
	svc, emails := newTestMailbox()

	_, err := svc.Send(context.Background(), 1, SendInput{
		To:      []string{"bob@gotmail.test"},
		Subject: "hello",
		Body:    `<p>hi</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	body := emails.created[0].Body
	if strings.Contains(body, "<script>") || strings.Contains(body, "alert(1)") {
		t.Fatalf("script content survived sanitization: %q", body)
	}
	if !strings.Contains(body, "<p>hi</p>") {
		t.Fatalf("benign markup should survive: %q", body)
	}
}

func TestSendDeduplicatesRecipients(t *testing.T) {
	svc, emails := newTestMailbox()

	_, err := svc.Send(context.Background(), 1, SendInput{
		To:      []string{"bob@gotmail.test", "carol@gotmail.test", "bob@gotmail.test"},
		Subject: "hello",
	})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	got := emails.recipientIDs[0]
	if len(got) != 2 {
		t.Fatalf("recipient IDs = %v, want two distinct IDs", got)
	}
}

func TestUpdateFlags(t *testing.T) {
	svc, emails := newTestMailbox()
	emails.flags[42] = &model.Email{ID: 42}

	read := true
	e, err := svc.UpdateFlags(context.Background(), 1, 42, model.FlagUpdate{IsRead: &read})
	if err != nil {
		t.Fatalf("UpdateFlags() failed: %v", err)
	}
	if !e.IsRead || e.IsStarred {
		t.Fatalf("partial update applied wrong flags: %+v", e)
	}
}

func TestUpdateFlagsEmpty(t *testing.T) {
	svc, _ := newTestMailbox()
	_, err := svc.UpdateFlags(context.Background(), 1, 42, model.FlagUpdate{})
	if apperr.StatusCode(err) != 400 {
		t.Fatalf("empty flag update should be a validation error, got %v", err)
	}
}

func TestUpdateFlagsUnknownEmail(t *testing.T) {
	svc, _ := newTestMailbox()
	read := true
	_, err := svc.UpdateFlags(context.Background(), 1, 999, model.FlagUpdate{IsRead: &read})
	if apperr.StatusCode(err) != 404 {
		t.Fatalf("unknown email should be not-found, got %v", err)
	}
}
