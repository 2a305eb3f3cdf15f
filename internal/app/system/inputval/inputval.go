// Package inputval holds the declarative field validators for user and club
// records.
//
// All predicates are pure functions over plain model values, independent of
// the storage layer. A write collects every failed predicate into a
// FieldErrors value and rejects the whole commit if any predicate failed —
// nothing is persisted on a validation failure.
package inputval

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// FieldError is a single validation failure scoped to one field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors collects every validation failure for a candidate record.
// It implements error so stores can surface it directly to callers.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether a failure was recorded for the named field.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e *FieldErrors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// IsValidEmail reports whether the value is a plain RFC 5322 address
// (no display name).
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// CheckDomains enforces the non-empty domain invariant and membership in the
// configured domain list. Returns nil when the slice is valid.
func CheckDomains(domains []string) FieldErrors {
	var errs FieldErrors
	if len(domains) == 0 {
		errs.add("domain", "Domain field must have at least one value.")
		return errs
	}
	for _, d := range domains {
		if !limits.IsAllowedDomain(d) {
			errs.add("domain", fmt.Sprintf("%q is not an allowed domain", d))
		}
	}
	return errs
}

// CheckSkills enforces the configured skill-count ceiling.
func CheckSkills(skills []string) FieldErrors {
	var errs FieldErrors
	if limit := limits.SkillsArrayLimit(); len(skills) > limit {
		errs.add("skills", fmt.Sprintf("exceeds the limit of %d", limit))
	}
	return errs
}

// CheckHigherMembers enforces the higher-member limit on a coordinator or
// assistant-coordinator list. Entries are counted, not resolved: duplicate
// or unknown names are accepted.
func CheckHigherMembers(field string, names []string) FieldErrors {
	var errs FieldErrors
	if limit := limits.HigherMemberLimit(); len(names) > limit {
		errs.add(field, fmt.Sprintf("Exceed the higher member limit of %d", limit))
	}
	return errs
}

// UserErrors evaluates every user predicate against a candidate record and
// the plaintext password submitted with it. The returned slice is empty when
// the record is valid.
func UserErrors(u models.User, password string) FieldErrors {
	var errs FieldErrors

	if u.RegdNo <= 0 {
		errs.add("regdNo", "Regd no is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		errs.add("email", "Email is required")
	} else if !IsValidEmail(u.Email) {
		errs.add("email", "Email is not a valid address")
	}
	if password == "" {
		errs.add("password", "Password is required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		errs.add("fullName", "full name is required")
	}
	if u.Gender == "" {
		errs.add("gender", "Gender box can't be empty")
	} else if !models.IsValidGender(u.Gender) {
		errs.add("gender", fmt.Sprintf("%q is not a valid gender", u.Gender))
	}
	if u.Role != "" && !models.IsValidRole(u.Role) {
		errs.add("role", fmt.Sprintf("%q is not a valid role", u.Role))
	}
	if u.YearOfGraduation <= 0 {
		errs.add("yearOfGraduation", "choose an year of graduation")
	}

	errs = append(errs, CheckDomains(u.Domains)...)
	errs = append(errs, CheckSkills(u.Skills)...)

	return errs
}

// ClubErrors evaluates every club predicate against a candidate record and
// the plaintext password submitted with it.
func ClubErrors(c models.Club, password string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(c.ClubName) == "" {
		errs.add("clubName", "Club name is required")
	}
	if strings.TrimSpace(c.ServiceMail) == "" {
		errs.add("serviceMail", "Service mail is required")
	} else if !IsValidEmail(c.ServiceMail) {
		errs.add("serviceMail", "Service mail is not a valid address")
	}
	if password == "" {
		errs.add("password", "Password is required")
	}
	if strings.TrimSpace(c.FacultyAdvisor) == "" {
		errs.add("facultyAdvisor", "Faculty Advisor name is required")
	}
	if strings.TrimSpace(c.ClubLogo) == "" {
		errs.add("clubLogo", "Club logo is required")
	}
	if strings.TrimSpace(c.ClubDescription) == "" {
		errs.add("clubDescription", "Club description is required")
	}
	if c.Type != "" && !models.IsValidClubType(c.Type) {
		errs.add("type", fmt.Sprintf("%q is not a valid club type", c.Type))
	}

	errs = append(errs, CheckHigherMembers("coordinator", c.Coordinators)...)
	errs = append(errs, CheckHigherMembers("assistantCoordinator", c.AssistantCoordinators)...)

	return errs
}
