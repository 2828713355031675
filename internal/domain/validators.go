package domain

import (
	"fmt"
	"regexp"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	urlRegex   = regexp.MustCompile(`^https?://.+`)
)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateSelectedPositions checks that exactly 4 distinct codes from the
// position enumeration were chosen. Fewer, more, duplicates, or unknown codes
// are all rejected before anything is written.
func ValidateSelectedPositions(codes []string) error {
	if len(codes) != 4 {
		return fmt.Errorf("exactly 4 positions are required, got %d", len(codes))
	}
	seen := make(map[string]bool, 4)
	for _, c := range codes {
		if !IsPosition(c) {
			return fmt.Errorf("unknown position code: %s", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate position code: %s", c)
		}
		seen[c] = true
	}
	return nil
}

// ValidateRole checks that role is one of the known account roles.
func ValidateRole(role string) error {
	switch role {
	case RoleUser, RoleAdmin, RoleCoach:
		return nil
	}
	return fmt.Errorf("unknown role: %s", role)
}

// ValidateSocialURL checks an optional social link. Empty is allowed.
func ValidateSocialURL(url, platform string) error {
	if url == "" {
		return nil
	}
	if !urlRegex.MatchString(url) {
		return fmt.Errorf("invalid %s URL", platform)
	}
	return nil
}

// ParseDateOfBirth parses a wizard date-of-birth string (YYYY-MM-DD) and
// rejects dates in the future.
func ParseDateOfBirth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("dateOfBirth is required")
	}
	dob, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dateOfBirth, expected YYYY-MM-DD")
	}
	if dob.After(time.Now()) {
		return time.Time{}, fmt.Errorf("dateOfBirth is in the future")
	}
	return dob, nil
}
