// Package domain holds the typed identifiers shared across modules.
package domain

import (
	"strings"

	dErrors "prequal/pkg/domain-errors"
)

// Phone identifies an applicant. All bureau, pre-approval and cache lookups key
// on it.
// Invariant: non-empty, digits with an optional leading +, 10..15 digits.
//
// Usage: construct via ParsePhone at trust boundaries; direct casting bypasses
// validation.
type Phone string

// ParsePhone constructs a Phone from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or not a plausible
// phone number; no other errors are expected.
func ParsePhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "phone number cannot be empty")
	}
	digits := s
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if len(digits) < 10 || len(digits) > 15 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "phone number must have 10 to 15 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "phone number may only contain digits after an optional +")
		}
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// LenderID identifies a lender policy in the catalog, e.g. "fibe_nbfc".
type LenderID string

func (l LenderID) String() string { return string(l) }

// MemberRef is the bureau's reference for one scrub record, e.g. "MBR001".
type MemberRef string

func (m MemberRef) String() string { return string(m) }
