package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data. Records are
// inserted directly, bypassing the stores, so store behavior can be tested
// against known documents.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with sane defaults. The password field
// holds a bcrypt hash of "secret" at minimum cost.
func (f *Fixtures) CreateUser(ctx context.Context, regdNo int64, email, fullName string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:               primitive.NewObjectID(),
		RegdNo:           regdNo,
		Email:            email,
		FullName:         fullName,
		FullNameCI:       text.Fold(fullName),
		PasswordHash:     string(hash),
		Gender:           models.GenderOther,
		Role:             models.RoleMember,
		YearOfGraduation: 2027,
		Domains:          []string{"Web Development"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateClub inserts a test club with the given members. The password field
// holds a bcrypt hash of "secret" at minimum cost.
func (f *Fixtures) CreateClub(ctx context.Context, name, serviceMail string, memberIDs ...primitive.ObjectID) models.Club {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	c := models.Club{
		ID:                    primitive.NewObjectID(),
		ClubName:              name,
		ClubNameCI:            text.Fold(name),
		ServiceMail:           serviceMail,
		PasswordHash:          string(hash),
		FacultyAdvisor:        "Dr. Test Advisor",
		Coordinators:          []string{"Coordinator One"},
		AssistantCoordinators: []string{},
		ClubLogo:              "https://example.com/logo.png",
		ClubDescription:       "A test club.",
		Type:                  models.ClubTypeTech,
		MemberIDs:             memberIDs,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if _, err := f.db.Collection("clubs").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return c
}
