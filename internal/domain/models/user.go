// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values stored on User.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Role values stored on User. The coordinator/assistant-coordinator *count*
// limits are enforced on the Club side, not here.
const (
	RoleMember               = "Member"
	RoleAssistantCoordinator = "Assistant-Coordinator"
	RoleCoordinator          = "Coordinator"
)

// User represents a registered student.
//
// NOTE:
//   - PasswordHash always holds a bcrypt hash; plaintext never reaches the
//     store (see system/credential).
//   - Club membership is stored as typed foreign keys in ClubIDs rather than
//     embedded reference documents.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegdNo     int64              `bson:"regd_no" json:"regd_no"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped

	PasswordHash string `bson:"password" json:"-"`

	Gender           string `bson:"gender" json:"gender"`
	Role             string `bson:"role" json:"role"`
	YearOfGraduation int    `bson:"year_of_graduation" json:"year_of_graduation"`

	ClubIDs []primitive.ObjectID `bson:"club_ids,omitempty" json:"club_ids,omitempty"`
	Domains []string             `bson:"domains" json:"domains"`
	Skills  []string             `bson:"skills,omitempty" json:"skills,omitempty"`

	IsAuthenticated bool `bson:"is_authenticated" json:"is_authenticated"`
	IsInClub        bool `bson:"is_in_club" json:"is_in_club"`

	PhotoURL     string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	GithubLink   string `bson:"github_link,omitempty" json:"github_link,omitempty"`
	LinkedinLink string `bson:"linkedin_link,omitempty" json:"linkedin_link,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidGender checks a gender value against the allowed set.
func IsValidGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// IsValidRole checks a role value against the allowed set.
func IsValidRole(value string) bool {
	switch value {
	case RoleMember, RoleAssistantCoordinator, RoleCoordinator:
		return true
	}
	return false
}

// MemberProfile is the password-free projection of a User that club reads
// return in place of bare member references.
type MemberProfile struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	RegdNo           int64              `bson:"regd_no" json:"regd_no"`
	Email            string             `bson:"email" json:"email"`
	FullName         string             `bson:"full_name" json:"full_name"`
	Gender           string             `bson:"gender" json:"gender"`
	Role             string             `bson:"role" json:"role"`
	YearOfGraduation int                `bson:"year_of_graduation" json:"year_of_graduation"`
	Domains          []string           `bson:"domains" json:"domains"`
	Skills           []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	PhotoURL         string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	GithubLink       string             `bson:"github_link,omitempty" json:"github_link,omitempty"`
	LinkedinLink     string             `bson:"linkedin_link,omitempty" json:"linkedin_link,omitempty"`
}
