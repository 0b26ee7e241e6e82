package util

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
)

// IsRetryableError classifies a consumer error. Malformed payloads and
// missing rows never succeed on redelivery; transient infrastructure
// failures do. Returns (isRetryable, errorKind).
func IsRetryableError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return false, "json_decode_error"
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return false, "row_not_found"
	}

	errStr := err.Error()
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return false, "duplicate_key"
	}
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return true, "db_connection_error"
	}

	// Before the net.Error check: context.DeadlineExceeded also
	// satisfies net.Error.
	if errors.Is(err, context.DeadlineExceeded) {
		return true, "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return false, "context_canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	// Unknown errors are not retried; redelivery loops are worse than a
	// dropped message that the logs point at.
	return false, "unknown_error"
}
