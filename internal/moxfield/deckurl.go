// File: internal/moxfield/deckurl.go
package moxfield

import (
	"strings"

	"toski_backend/internal/common"
)

// ParseDeckURL extracts the deck id from a link of the form host/decks/{id},
// with an optional http:// or https:// prefix.
func ParseDeckURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "https://"):
		trimmed = strings.TrimPrefix(trimmed, "https://")
	case strings.HasPrefix(trimmed, "http://"):
		trimmed = strings.TrimPrefix(trimmed, "http://")
	}

	segments := strings.Split(trimmed, "/")
	if len(segments) != 3 || segments[2] == "" {
		return "", common.ErrInvalidURLShape
	}
	return segments[2], nil
}
