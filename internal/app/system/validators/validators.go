// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/clubhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators as a server-side backstop behind the in-process inputval
// predicates. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("clubs", clubsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		zap.L().Info("collection exists", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"regd_no", "email", "password", "full_name", "gender", "role", "year_of_graduation", "domains"},
			"properties": bson.M{
				"regd_no":            bson.M{"bsonType": bson.A{"long", "int"}},
				"email":              bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"password":           bson.M{"bsonType": "string", "minLength": 1},
				"full_name":          bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"full_name_ci":       bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"gender":             bson.M{"enum": bson.A{models.GenderMale, models.GenderFemale, models.GenderOther}},
				"role":               bson.M{"enum": bson.A{models.RoleMember, models.RoleAssistantCoordinator, models.RoleCoordinator}},
				"year_of_graduation": bson.M{"bsonType": bson.A{"long", "int"}},
				"domains":            bson.M{"bsonType": "array", "minItems": 1, "items": bson.M{"bsonType": "string"}},
				"skills":             bson.M{"bsonType": "array", "maxItems": limits.SkillsArrayLimit(), "items": bson.M{"bsonType": "string"}},
				"club_ids":           bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
				"is_authenticated":   bson.M{"bsonType": "bool"},
				"is_in_club":         bson.M{"bsonType": "bool"},
			},
		},
	}
}

func clubsSchema() bson.M {
	limit := limits.HigherMemberLimit()
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"club_name", "service_mail", "password", "faculty_advisor", "club_logo", "club_description", "type"},
			"properties": bson.M{
				"club_name":              bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"club_name_ci":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"service_mail":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"password":               bson.M{"bsonType": "string", "minLength": 1},
				"faculty_advisor":        bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"club_logo":              bson.M{"bsonType": "string", "minLength": 1},
				"club_description":       bson.M{"bsonType": "string", "minLength": 1},
				"type":                   bson.M{"enum": bson.A{models.ClubTypeTech, models.ClubTypeNonTech}},
				"coordinators":           bson.M{"bsonType": "array", "maxItems": limit, "items": bson.M{"bsonType": "string"}},
				"assistant_coordinators": bson.M{"bsonType": "array", "maxItems": limit, "items": bson.M{"bsonType": "string"}},
				"member_ids":             bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
				"event_ids":              bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
				"achievement_ids":        bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
			},
		},
	}
}
