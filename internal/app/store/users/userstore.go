// Package userstore owns the users collection: create, update, find, and
// delete, with the write pipeline validate → hashIfChanged → persist applied
// to every commit.
package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/credential"
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
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Collection exposes the underlying collection for startup schema work.
func (s *Store) Collection() *mongo.Collection { return s.c }

var (
	// ErrDuplicateUser is returned when a unique-index collision occurs on
	// regd_no or email.
	ErrDuplicateUser = errors.New("a user with this regd no or email already exists")

	// ErrNotFound is returned when an update or delete matches no user.
	ErrNotFound = errors.New("user not found")
)

// Create inserts a new user after normalizing and validating fields and
// hashing the submitted password. Validation failures are returned as
// inputval.FieldErrors with every failed predicate; nothing is persisted in
// that case. The password never reaches the collection in plaintext: a
// hashing failure or timeout aborts the insert.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	// Normalize core fields
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Gender = normalize.Gender(u.Gender)
	u.PhotoURL = normalize.Link(u.PhotoURL)
	u.GithubLink = normalize.Link(u.GithubLink)
	u.LinkedinLink = normalize.Link(u.LinkedinLink)
	if u.Role == "" {
		u.Role = models.RoleMember
	} else {
		u.Role = normalize.Role(u.Role)
	}

	// Validate
	if errs := inputval.UserErrors(u, password); len(errs) > 0 {
		return models.User{}, errs
	}

	// Hash the credential; abort on any failure
	hash, err := credential.HashUser(ctx, password)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	u.PasswordHash = hash

	// Timestamps
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	// Insert
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the fields that can be changed on a user. Nil pointers leave
// the stored value untouched; in particular, a nil Password leaves the
// stored hash byte-for-byte identical.
type Update struct {
	FullName         *string
	Email            *string
	Password         *string
	Gender           *string
	Role             *string
	YearOfGraduation *int
	Domains          *[]string
	Skills           *[]string
	IsAuthenticated  *bool
	IsInClub         *bool
	PhotoURL         *string
	GithubLink       *string
	LinkedinLink     *string
}

// errorsFor validates only the fields present in the patch, collecting every
// failure the way a full-record validation would.
func (u Update) errorsFor() inputval.FieldErrors {
	var errs inputval.FieldErrors

	if u.Email != nil && !inputval.IsValidEmail(normalize.Email(*u.Email)) {
		errs = append(errs, inputval.FieldError{Field: "email", Message: "Email is not a valid address"})
	}
	if u.Password != nil && *u.Password == "" {
		errs = append(errs, inputval.FieldError{Field: "password", Message: "Password is required"})
	}
	if u.FullName != nil && normalize.Name(*u.FullName) == "" {
		errs = append(errs, inputval.FieldError{Field: "fullName", Message: "full name is required"})
	}
	if u.Gender != nil && !models.IsValidGender(normalize.Gender(*u.Gender)) {
		errs = append(errs, inputval.FieldError{Field: "gender", Message: fmt.Sprintf("%q is not a valid gender", *u.Gender)})
	}
	if u.Role != nil && !models.IsValidRole(normalize.Role(*u.Role)) {
		errs = append(errs, inputval.FieldError{Field: "role", Message: fmt.Sprintf("%q is not a valid role", *u.Role)})
	}
	if u.YearOfGraduation != nil && *u.YearOfGraduation <= 0 {
		errs = append(errs, inputval.FieldError{Field: "yearOfGraduation", Message: "choose an year of graduation"})
	}
	if u.Domains != nil {
		errs = append(errs, inputval.CheckDomains(*u.Domains)...)
	}
	if u.Skills != nil {
		errs = append(errs, inputval.CheckSkills(*u.Skills)...)
	}
	return errs
}

// UpdateByID applies a patch to one user. Validation and hashing both
// complete before anything is written, so a failure in either leaves the
// stored document untouched. The password is re-hashed only when the patch
// carries one.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if errs := upd.errorsFor(); len(errs) > 0 {
		return errs
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.FullName != nil {
		name := normalize.Name(*upd.FullName)
		set["full_name"] = name
		set["full_name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Password != nil {
		hash, err := credential.HashUser(ctx, *upd.Password)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		set["password"] = hash
	}
	if upd.Gender != nil {
		set["gender"] = normalize.Gender(*upd.Gender)
	}
	if upd.Role != nil {
		set["role"] = normalize.Role(*upd.Role)
	}
	if upd.YearOfGraduation != nil {
		set["year_of_graduation"] = *upd.YearOfGraduation
	}
	if upd.Domains != nil {
		set["domains"] = *upd.Domains
	}
	if upd.Skills != nil {
		set["skills"] = *upd.Skills
	}
	if upd.IsAuthenticated != nil {
		set["is_authenticated"] = *upd.IsAuthenticated
	}
	if upd.IsInClub != nil {
		set["is_in_club"] = *upd.IsInClub
	}
	if upd.PhotoURL != nil {
		set["photo_url"] = normalize.Link(*upd.PhotoURL)
	}
	if upd.GithubLink != nil {
		set["github_link"] = normalize.Link(*upd.GithubLink)
	}
	if upd.LinkedinLink != nil {
		set["linkedin_link"] = normalize.Link(*upd.LinkedinLink)
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateUser
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByRegdNo looks up a user by registration number.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByRegdNo(ctx context.Context, regdNo int64) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"regd_no": regdNo}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOne loads a single user matching an arbitrary filter.
func (s *Store) FindOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Find loads all users matching an arbitrary filter.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyPassword checks a submitted plaintext against the stored hash for
// the given user. Returns false for an unknown user.
func (s *Store) VerifyPassword(ctx context.Context, id primitive.ObjectID, plaintext string) (bool, error) {
	var u struct {
		PasswordHash string `bson:"password"`
	}
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return credential.Verify(u.PasswordHash, plaintext), nil
}

// Delete removes a user by ID. It is a pass-through: membership references
// held by clubs are not cascaded here, and population degrades gracefully
// for any that remain. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
