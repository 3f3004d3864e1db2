package domain

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// ParseID validates a store id and returns its canonical form.
func ParseID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return "", false
	}
	return id.String(), true
}

// ValidateEmail validates a bare email address (no display name).
func ValidateEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
