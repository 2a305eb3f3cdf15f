package clubstore_test

import (
	"errors"
	"strings"
	"testing"

	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/system/indexes"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fastHashing(t *testing.T) {
	t.Helper()
	limits.Configure(limits.Config{UserHashCost: 4, ClubHashCost: 4})
	t.Cleanup(limits.Reset)
}

func validClub() models.Club {
	return models.Club{
		ClubName:        "Robotics Club",
		ServiceMail:     "robotics@example.edu",
		FacultyAdvisor:  "Dr. Ada Example",
		Coordinators:    []string{"Sam Coordinator"},
		ClubLogo:        "https://example.edu/robotics.png",
		ClubDescription: "We build robots.",
	}
}

func TestStore_Create(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validClub(), "service-secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.Type != models.ClubTypeTech {
		t.Errorf("expected default type %q, got %q", models.ClubTypeTech, created.Type)
	}
	if created.ClubNameCI == "" {
		t.Error("expected folded club name shadow field")
	}
	if created.PasswordHash == "service-secret" {
		t.Fatal("plaintext service password was stored")
	}
	if !strings.HasPrefix(created.PasswordHash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", created.PasswordHash)
	}

	ok, err := store.VerifyPassword(ctx, created.ID, "service-secret")
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !ok {
		t.Error("expected stored hash to verify against the service password")
	}
}

func TestStore_Create_SanitizesDescription(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := validClub()
	c.ClubDescription = `We build robots.<script>alert("x")</script>`

	created, err := store.Create(ctx, c, "service-secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if strings.Contains(created.ClubDescription, "<script>") {
		t.Errorf("script survived sanitization: %q", created.ClubDescription)
	}
	if !strings.Contains(created.ClubDescription, "We build robots.") {
		t.Errorf("text content lost in sanitization: %q", created.ClubDescription)
	}
}

func TestStore_Create_CoordinatorLimit(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := validClub()
	c.Coordinators = []string{"One", "Two", "Three"}

	_, err := store.Create(ctx, c, "service-secret")
	var errs inputval.FieldErrors
	if !errors.As(err, &errs) || !errs.Has("coordinator") {
		t.Fatalf("expected a coordinator failure, got %v", err)
	}

	// Nothing was persisted.
	n, err := db.Collection("clubs").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty collection after rejected create, got %d docs", n)
	}
}

func TestStore_Create_DuplicateCoordinatorNamesAllowed(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := validClub()
	c.Coordinators = []string{"Same Person", "Same Person"}

	if _, err := store.Create(ctx, c, "service-secret"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
}

func TestStore_Create_CollectsAllValidationFailures(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Club{ServiceMail: "bad"}, "")
	var errs inputval.FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	for _, field := range []string{"clubName", "serviceMail", "password", "facultyAdvisor", "clubLogo", "clubDescription"} {
		if !errs.Has(field) {
			t.Errorf("expected a failure for field %q", field)
		}
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := clubstore.New(db)

	if _, err := store.Create(ctx, validClub(), "service-secret"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	dup := validClub()
	dup.ServiceMail = "robotics2@example.edu"
	_, err := store.Create(ctx, dup, "service-secret")
	if !errors.Is(err, clubstore.ErrDuplicateClub) {
		t.Fatalf("expected ErrDuplicateClub, got %v", err)
	}
}

func TestStore_UpdateByID(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validClub(), "service-secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	desc := "We build <b>robots</b>.<script>x()</script>"
	typ := "non-tech"
	if err := store.UpdateByID(ctx, created.ID, clubstore.Update{
		ClubDescription: &desc,
		Type:            &typ,
	}); err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Type != models.ClubTypeNonTech {
		t.Errorf("type not canonicalized: %q", got.Type)
	}
	if strings.Contains(got.ClubDescription, "<script>") {
		t.Errorf("script survived update sanitization: %q", got.ClubDescription)
	}
	if got.PasswordHash != created.PasswordHash {
		t.Error("stored hash changed on a patch that carried no password")
	}
}

func TestStore_UpdateByID_CoordinatorLimit(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validClub(), "service-secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	over := []string{"One", "Two", "Three"}
	err = store.UpdateByID(ctx, created.ID, clubstore.Update{AssistantCoordinators: &over})
	var errs inputval.FieldErrors
	if !errors.As(err, &errs) || !errs.Has("assistantCoordinator") {
		t.Fatalf("expected an assistantCoordinator failure, got %v", err)
	}
}

func TestStore_UpdateByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	name := "Ghost Club"
	err := store.UpdateByID(ctx, primitive.NewObjectID(), clubstore.Update{ClubName: &name})
	if !errors.Is(err, clubstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddMember(t *testing.T) {
	fastHashing(t)
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Robotics Club", "robotics@example.edu")
	user := fx.CreateUser(ctx, 20250042, "jordan@example.edu", "Jordan Lee")

	if err := store.AddMember(ctx, club.ID, user.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	got, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 1 || got.MemberIDs[0] != user.ID {
		t.Fatalf("member_ids not updated: %v", got.MemberIDs)
	}

	// Membership is mirrored on the user record.
	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&u); err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if !u.IsInClub {
		t.Error("expected is_in_club to be set")
	}
	if len(u.ClubIDs) != 1 || u.ClubIDs[0] != club.ID {
		t.Errorf("club_ids not mirrored: %v", u.ClubIDs)
	}

	// Adding the same member again does not duplicate the reference.
	if err := store.AddMember(ctx, club.ID, user.ID); err != nil {
		t.Fatalf("repeat AddMember failed: %v", err)
	}
	got, err = store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 1 {
		t.Errorf("expected 1 member after repeat add, got %d", len(got.MemberIDs))
	}
}

func TestStore_AddMember_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Robotics Club", "robotics@example.edu")

	err := store.AddMember(ctx, club.ID, primitive.NewObjectID())
	if !errors.Is(err, clubstore.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}

	got, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 0 {
		t.Errorf("member_ids changed by rejected add: %v", got.MemberIDs)
	}
}

func TestStore_RemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	clubA := fx.CreateClub(ctx, "Robotics Club", "robotics@example.edu")
	clubB := fx.CreateClub(ctx, "Coding Club", "coding@example.edu")
	user := fx.CreateUser(ctx, 20250042, "jordan@example.edu", "Jordan Lee")

	if err := store.AddMember(ctx, clubA.ID, user.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.AddMember(ctx, clubB.ID, user.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	if err := store.RemoveMember(ctx, clubA.ID, user.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&u); err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if !u.IsInClub {
		t.Error("is_in_club cleared while the user still belongs to a club")
	}

	if err := store.RemoveMember(ctx, clubB.ID, user.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&u); err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if u.IsInClub {
		t.Error("is_in_club still set after the last membership was removed")
	}
	if len(u.ClubIDs) != 0 {
		t.Errorf("club_ids not emptied: %v", u.ClubIDs)
	}
}

func TestStore_AddEventAndAchievement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Robotics Club", "robotics@example.edu")
	eventID := primitive.NewObjectID()
	achievementID := primitive.NewObjectID()

	if err := store.AddEvent(ctx, club.ID, eventID); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	if err := store.AddAchievement(ctx, club.ID, achievementID); err != nil {
		t.Fatalf("AddAchievement failed: %v", err)
	}

	got, err := store.GetByID(ctx, club.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.EventIDs) != 1 || got.EventIDs[0] != eventID {
		t.Errorf("event_ids not updated: %v", got.EventIDs)
	}
	if len(got.AchievementIDs) != 1 || got.AchievementIDs[0] != achievementID {
		t.Errorf("achievement_ids not updated: %v", got.AchievementIDs)
	}

	if err := store.AddEvent(ctx, primitive.NewObjectID(), eventID); !errors.Is(err, clubstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown club, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clubstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Robotics Club", "robotics@example.edu")

	n, err := store.Delete(ctx, club.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	n, err = store.Delete(ctx, club.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", n)
	}
}
