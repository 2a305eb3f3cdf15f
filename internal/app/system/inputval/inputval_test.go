package inputval

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"user@localhost", true}, // RFC 5322 allows single-label domains

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - display name format (should be rejected)
		{"User Name <user@example.com>", false},

		// Invalid emails - malformed
		{"user @example.com", false},
		{"user@exam ple.com", false},
		{"user..name@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func validUser() models.User {
	return models.User{
		RegdNo:           2211234,
		Email:            "student@college.edu",
		FullName:         "Asha Rao",
		Gender:           models.GenderFemale,
		Role:             models.RoleMember,
		YearOfGraduation: 2027,
		Domains:          []string{"Web Development"},
		Skills:           []string{"go", "react"},
	}
}

func TestUserErrors_Valid(t *testing.T) {
	if errs := UserErrors(validUser(), "s3cret"); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestUserErrors_CollectsAllFailures(t *testing.T) {
	// An empty record must report every required field at once, not just
	// the first failure.
	errs := UserErrors(models.User{}, "")
	for _, field := range []string{"regdNo", "email", "password", "fullName", "gender", "yearOfGraduation", "domain"} {
		if !errs.Has(field) {
			t.Errorf("expected a failure for field %q, got %v", field, errs)
		}
	}
}

func TestUserErrors_EmptyDomains(t *testing.T) {
	u := validUser()
	u.Domains = nil
	errs := UserErrors(u, "s3cret")
	if !errs.Has("domain") {
		t.Errorf("expected domain failure, got %v", errs)
	}
}

func TestUserErrors_UnknownDomain(t *testing.T) {
	u := validUser()
	u.Domains = []string{"Web Development", "Underwater Basket Weaving"}
	errs := UserErrors(u, "s3cret")
	if !errs.Has("domain") {
		t.Errorf("expected domain failure, got %v", errs)
	}
}

func TestUserErrors_SkillsOverLimit(t *testing.T) {
	limits.Configure(limits.Config{SkillsArrayLimit: 3})
	defer limits.Reset()

	u := validUser()
	u.Skills = []string{"a", "b", "c", "d"}
	errs := UserErrors(u, "s3cret")
	if !errs.Has("skills") {
		t.Errorf("expected skills failure, got %v", errs)
	}

	u.Skills = []string{"a", "b", "c"}
	if errs := UserErrors(u, "s3cret"); errs.Has("skills") {
		t.Errorf("expected skills at the limit to pass, got %v", errs)
	}
}

func TestUserErrors_BadEnumValues(t *testing.T) {
	u := validUser()
	u.Gender = "Unknown"
	u.Role = "President"
	errs := UserErrors(u, "s3cret")
	if !errs.Has("gender") {
		t.Errorf("expected gender failure, got %v", errs)
	}
	if !errs.Has("role") {
		t.Errorf("expected role failure, got %v", errs)
	}
}

func validClub() models.Club {
	return models.Club{
		ClubName:        "Robotics Club",
		ServiceMail:     "robotics@college.edu",
		FacultyAdvisor:  "Dr. Advisor",
		Coordinators:    []string{"Asha Rao"},
		ClubLogo:        "https://example.com/logo.png",
		ClubDescription: "We build robots.",
		Type:            models.ClubTypeTech,
	}
}

func TestClubErrors_Valid(t *testing.T) {
	if errs := ClubErrors(validClub(), "s3cret"); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestClubErrors_CollectsAllFailures(t *testing.T) {
	errs := ClubErrors(models.Club{}, "")
	for _, field := range []string{"clubName", "serviceMail", "password", "facultyAdvisor", "clubLogo", "clubDescription"} {
		if !errs.Has(field) {
			t.Errorf("expected a failure for field %q, got %v", field, errs)
		}
	}
}

func TestClubErrors_HigherMemberLimit(t *testing.T) {
	c := validClub()
	c.Coordinators = []string{"a", "b", "c"}
	c.AssistantCoordinators = []string{"d", "e", "f"}
	errs := ClubErrors(c, "s3cret")
	if !errs.Has("coordinator") {
		t.Errorf("expected coordinator failure, got %v", errs)
	}
	if !errs.Has("assistantCoordinator") {
		t.Errorf("expected assistantCoordinator failure, got %v", errs)
	}

	// Exactly at the limit passes.
	c.Coordinators = []string{"a", "b"}
	c.AssistantCoordinators = []string{"d", "e"}
	if errs := ClubErrors(c, "s3cret"); len(errs) != 0 {
		t.Errorf("expected no errors at the limit, got %v", errs)
	}
}

func TestCheckHigherMembers_DuplicatesAllowed(t *testing.T) {
	// The roster is informal: duplicate names are counted, not rejected.
	if errs := CheckHigherMembers("coordinator", []string{"same", "same"}); len(errs) != 0 {
		t.Errorf("expected duplicates within the limit to pass, got %v", errs)
	}
}

func TestFieldErrors_Error(t *testing.T) {
	errs := FieldErrors{
		{Field: "email", Message: "Email is required"},
		{Field: "gender", Message: "Gender box can't be empty"},
	}
	want := "validation failed: email: Email is required; gender: Gender box can't be empty"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
