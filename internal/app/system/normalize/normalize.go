// Package normalize holds small input-normalization helpers applied before
// validation and persistence, so equality checks (unique emails, enum
// membership) behave predictably regardless of how callers cased or padded
// their input.
package normalize

import (
	"strings"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Link trims a URL-valued field (photo, github, linkedin).
func Link(s string) string {
	return strings.TrimSpace(s)
}

// Gender canonicalizes a gender value to its stored form
// ("male" → "Male"). Unknown values are trimmed and returned as-is so the
// validator can report them.
func Gender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return models.GenderMale
	case "female":
		return models.GenderFemale
	case "other":
		return models.GenderOther
	}
	return strings.TrimSpace(s)
}

// Role canonicalizes a role value to its stored form. Unknown values are
// trimmed and returned as-is so the validator can report them.
func Role(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member":
		return models.RoleMember
	case "assistant-coordinator":
		return models.RoleAssistantCoordinator
	case "coordinator":
		return models.RoleCoordinator
	}
	return strings.TrimSpace(s)
}

// ClubType canonicalizes a club type value to its stored form. Unknown
// values are trimmed and returned as-is so the validator can report them.
func ClubType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tech":
		return models.ClubTypeTech
	case "non-tech":
		return models.ClubTypeNonTech
	}
	return strings.TrimSpace(s)
}
