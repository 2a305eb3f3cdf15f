// Package clubstore owns the clubs collection: create, update, find, delete,
// and membership maintenance. Writes run validate → hashIfChanged → persist;
// every read resolves member references through the population stage in
// populate.go before results are returned.
package clubstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/credential"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("clubs"),
		users: db.Collection("users"),
	}
}

// Collection exposes the underlying collection for startup schema work.
func (s *Store) Collection() *mongo.Collection { return s.c }

var (
	// ErrDuplicateClub is returned when a unique-index collision occurs on
	// club_name or service_mail.
	ErrDuplicateClub = errors.New("a club with this name or service mail already exists")

	// ErrNotFound is returned when an update or membership change matches no club.
	ErrNotFound = errors.New("club not found")

	// ErrMemberNotFound is returned when a membership change references a
	// user that does not exist.
	ErrMemberNotFound = errors.New("referenced user does not exist")
)

// Create inserts a new club after normalizing and validating fields and
// hashing the submitted service password. All failed predicates are returned
// together as inputval.FieldErrors and nothing is persisted in that case.
func (s *Store) Create(ctx context.Context, c models.Club, password string) (models.Club, error) {
	// Normalize core fields
	c.ID = primitive.NewObjectID()
	c.ClubName = normalize.Name(c.ClubName)
	c.ClubNameCI = text.Fold(c.ClubName)
	c.ServiceMail = normalize.Email(c.ServiceMail)
	c.FacultyAdvisor = normalize.Name(c.FacultyAdvisor)
	c.ClubLogo = normalize.Link(c.ClubLogo)
	c.ClubDescription = htmlsanitize.Sanitize(c.ClubDescription)
	if c.Type == "" {
		c.Type = models.ClubTypeTech
	} else {
		c.Type = normalize.ClubType(c.Type)
	}
	// Store arrays, never null, so the server-side schema holds.
	if c.Coordinators == nil {
		c.Coordinators = []string{}
	}
	if c.AssistantCoordinators == nil {
		c.AssistantCoordinators = []string{}
	}

	// Validate
	if errs := inputval.ClubErrors(c, password); len(errs) > 0 {
		return models.Club{}, errs
	}

	// Hash the credential; abort on any failure
	hash, err := credential.HashClub(ctx, password)
	if err != nil {
		return models.Club{}, fmt.Errorf("create club: %w", err)
	}
	c.PasswordHash = hash

	// Timestamps
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	// Insert
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Club{}, ErrDuplicateClub
		}
		return models.Club{}, err
	}
	return c, nil
}

// Update holds the fields that can be changed on a club. Nil pointers leave
// the stored value untouched; a nil Password leaves the stored hash
// byte-for-byte identical.
type Update struct {
	ClubName              *string
	ServiceMail           *string
	Password              *string
	FacultyAdvisor        *string
	Coordinators          *[]string
	AssistantCoordinators *[]string
	ClubLogo              *string
	ClubDescription       *string
	Type                  *string
}

// errorsFor validates only the fields present in the patch.
func (u Update) errorsFor() inputval.FieldErrors {
	var errs inputval.FieldErrors

	if u.ClubName != nil && normalize.Name(*u.ClubName) == "" {
		errs = append(errs, inputval.FieldError{Field: "clubName", Message: "Club name is required"})
	}
	if u.ServiceMail != nil && !inputval.IsValidEmail(normalize.Email(*u.ServiceMail)) {
		errs = append(errs, inputval.FieldError{Field: "serviceMail", Message: "Service mail is not a valid address"})
	}
	if u.Password != nil && *u.Password == "" {
		errs = append(errs, inputval.FieldError{Field: "password", Message: "Password is required"})
	}
	if u.FacultyAdvisor != nil && normalize.Name(*u.FacultyAdvisor) == "" {
		errs = append(errs, inputval.FieldError{Field: "facultyAdvisor", Message: "Faculty Advisor name is required"})
	}
	if u.ClubLogo != nil && normalize.Link(*u.ClubLogo) == "" {
		errs = append(errs, inputval.FieldError{Field: "clubLogo", Message: "Club logo is required"})
	}
	if u.ClubDescription != nil && normalize.Name(*u.ClubDescription) == "" {
		errs = append(errs, inputval.FieldError{Field: "clubDescription", Message: "Club description is required"})
	}
	if u.Type != nil && !models.IsValidClubType(normalize.ClubType(*u.Type)) {
		errs = append(errs, inputval.FieldError{Field: "type", Message: fmt.Sprintf("%q is not a valid club type", *u.Type)})
	}
	if u.Coordinators != nil {
		errs = append(errs, inputval.CheckHigherMembers("coordinator", *u.Coordinators)...)
	}
	if u.AssistantCoordinators != nil {
		errs = append(errs, inputval.CheckHigherMembers("assistantCoordinator", *u.AssistantCoordinators)...)
	}
	return errs
}

// UpdateByID applies a patch to one club. Validation and hashing both
// complete before anything is written. The service password is re-hashed
// only when the patch carries one.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if errs := upd.errorsFor(); len(errs) > 0 {
		return errs
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.ClubName != nil {
		name := normalize.Name(*upd.ClubName)
		set["club_name"] = name
		set["club_name_ci"] = text.Fold(name)
	}
	if upd.ServiceMail != nil {
		set["service_mail"] = normalize.Email(*upd.ServiceMail)
	}
	if upd.Password != nil {
		hash, err := credential.HashClub(ctx, *upd.Password)
		if err != nil {
			return fmt.Errorf("update club: %w", err)
		}
		set["password"] = hash
	}
	if upd.FacultyAdvisor != nil {
		set["faculty_advisor"] = normalize.Name(*upd.FacultyAdvisor)
	}
	if upd.Coordinators != nil {
		set["coordinators"] = *upd.Coordinators
	}
	if upd.AssistantCoordinators != nil {
		set["assistant_coordinators"] = *upd.AssistantCoordinators
	}
	if upd.ClubLogo != nil {
		set["club_logo"] = normalize.Link(*upd.ClubLogo)
	}
	if upd.ClubDescription != nil {
		set["club_description"] = htmlsanitize.Sanitize(*upd.ClubDescription)
	}
	if upd.Type != nil {
		set["type"] = normalize.ClubType(*upd.Type)
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateClub
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMember adds a user to a club's member list and mirrors the membership
// on the user record (club_ids, is_in_club). The user must exist — a member
// reference must denote a real user at the time it is written.
func (s *Store) AddMember(ctx context.Context, clubID, userID primitive.ObjectID) error {
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrMemberNotFound
		}
		return err
	}

	now := time.Now()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": clubID}, bson.M{
		"$addToSet": bson.M{"member_ids": userID},
		"$set":      bson.M{"updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	_, err = s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"club_ids": clubID},
		"$set":      bson.M{"is_in_club": true, "updated_at": now},
	})
	return err
}

// RemoveMember removes a user from a club's member list and mirrors the
// change on the user record. is_in_club is recomputed from the user's
// remaining memberships.
func (s *Store) RemoveMember(ctx context.Context, clubID, userID primitive.ObjectID) error {
	now := time.Now()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": clubID}, bson.M{
		"$pull": bson.M{"member_ids": userID},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"club_ids": clubID},
		"$set":  bson.M{"updated_at": now},
	}); err != nil {
		return err
	}

	// Recompute the membership flag from what is left.
	var u struct {
		ClubIDs []primitive.ObjectID `bson:"club_ids"`
	}
	err = s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}
	_, err = s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"is_in_club": len(u.ClubIDs) > 0},
	})
	return err
}

// AddEvent records an event reference on the club. Events are external
// entities; only their identity is stored.
func (s *Store) AddEvent(ctx context.Context, clubID, eventID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": clubID}, bson.M{
		"$addToSet": bson.M{"event_ids": eventID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddAchievement records an achievement reference on the club.
func (s *Store) AddAchievement(ctx context.Context, clubID, achievementID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": clubID}, bson.M{
		"$addToSet": bson.M{"achievement_ids": achievementID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyPassword checks a submitted plaintext against the stored hash for
// the given club. Returns false for an unknown club.
func (s *Store) VerifyPassword(ctx context.Context, id primitive.ObjectID, plaintext string) (bool, error) {
	var c struct {
		PasswordHash string `bson:"password"`
	}
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return credential.Verify(c.PasswordHash, plaintext), nil
}

// Delete removes a club by ID. It is a pass-through: club_ids entries on
// member users are not cascaded here; that cleanup belongs to the calling
// workflow. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
