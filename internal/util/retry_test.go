package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestIsRetryableError(t *testing.T) {
	jsonErr := json.Unmarshal([]byte(`{bad`), &struct{}{})

	tests := []struct {
		name          string
		err           error
		wantRetryable bool
		wantKind      string
	}{
		{"nil", nil, false, ""},
		{"json syntax", jsonErr, false, "json_decode_error"},
		{"missing row", fmt.Errorf("load user: %w", pgx.ErrNoRows), false, "row_not_found"},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "users_phone_number_key"`), false, "duplicate_key"},
		{"connection refused", errors.New("dial tcp: connection refused"), true, "db_connection_error"},
		{"statement timeout", errors.New("pq: canceling statement due to statement timeout"), true, "db_connection_error"},
		{"deadline", context.DeadlineExceeded, true, "timeout"},
		{"canceled", context.Canceled, false, "context_canceled"},
		{"unknown", errors.New("something odd"), false, "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retryable, kind := IsRetryableError(tt.err)
			if retryable != tt.wantRetryable || kind != tt.wantKind {
				t.Fatalf("IsRetryableError() = (%v, %q), want (%v, %q)",
					retryable, kind, tt.wantRetryable, tt.wantKind)
			}
		})
	}
}
