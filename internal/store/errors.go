package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// Category sentinels. Repository errors wrap exactly one of these so callers
// can branch with errors.Is; everything else is a generic failure.
var (
	ErrPermission  = errors.New("permission denied")
	ErrUnavailable = errors.New("service unavailable")
	ErrNetwork     = errors.New("network error")
	ErrNotFound    = errors.New("not found")
)

// Classify rewraps a driver error into one of the category sentinels,
// keeping the original message text. Unrecognized errors pass through
// unchanged (generic category).
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "28", "42": // invalid_authorization, insufficient_privilege et al.
			if pqErr.Code == "42501" || pqErr.Code.Class() == "28" {
				return fmt.Errorf("%w: %v", ErrPermission, err)
			}
		case "53", "57", "58": // insufficient_resources, operator_intervention
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		case "08": // connection_exception
			return fmt.Errorf("%w: %v", ErrNetwork, err)
		}
	}

	return err
}
