// Package ref resolves opaque entity references. Clients may reference a
// related entity either by numeric id ("7") or by URI-style reference
// ("/api/v1/users/7"); both forms resolve to the same identifier.
package ref

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidRef = errors.New("invalid entity reference")

// ParseID extracts the numeric identifier from an opaque reference.
func ParseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidRef
	}

	// URI-style reference: take the last path segment.
	if strings.Contains(raw, "/") {
		raw = strings.TrimSuffix(raw, "/")
		if idx := strings.LastIndex(raw, "/"); idx >= 0 {
			raw = raw[idx+1:]
		}
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidRef
	}
	return uint(id), nil
}
