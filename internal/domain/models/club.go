// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club type values.
const (
	ClubTypeTech    = "Tech"
	ClubTypeNonTech = "Non-Tech"
)

// Club represents a campus club with its own service credential.
//
// NOTE:
//   - Coordinators and AssistantCoordinators hold informal identifiers
//     (names/handles). They are validated on count only, never resolved
//     against user records.
//   - MemberIDs, EventIDs, and AchievementIDs are typed foreign keys.
//     Events and achievements are external entities referenced by identity;
//     nothing in this core reads their fields.
type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubName    string             `bson:"club_name" json:"club_name"`
	ClubNameCI  string             `bson:"club_name_ci" json:"club_name_ci"` // lowercase, diacritics-stripped
	ServiceMail string             `bson:"service_mail" json:"service_mail"`

	PasswordHash string `bson:"password" json:"-"`

	FacultyAdvisor        string   `bson:"faculty_advisor" json:"faculty_advisor"`
	Coordinators          []string `bson:"coordinators" json:"coordinators"`
	AssistantCoordinators []string `bson:"assistant_coordinators" json:"assistant_coordinators"`

	ClubLogo        string `bson:"club_logo" json:"club_logo"`
	ClubDescription string `bson:"club_description" json:"club_description"`
	Type            string `bson:"type" json:"type"`

	MemberIDs      []primitive.ObjectID `bson:"member_ids,omitempty" json:"member_ids,omitempty"`
	EventIDs       []primitive.ObjectID `bson:"event_ids,omitempty" json:"event_ids,omitempty"`
	AchievementIDs []primitive.ObjectID `bson:"achievement_ids,omitempty" json:"achievement_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidClubType checks a club type value against the allowed set.
func IsValidClubType(value string) bool {
	switch value {
	case ClubTypeTech, ClubTypeNonTech:
		return true
	}
	return false
}

// PopulatedClub is what club reads return: the stored club document with
// member references resolved into password-free user projections.
// Members is aligned index-for-index with MemberIDs; an entry is nil when
// the referenced user no longer exists.
type PopulatedClub struct {
	Club    `bson:",inline"`
	Members []*MemberProfile `bson:"-" json:"members"`
}
