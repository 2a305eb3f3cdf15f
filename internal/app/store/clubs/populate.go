// internal/app/store/clubs/populate.go
//
// Population stage for club reads: fetch → resolveReferences →
// strip(password) → return. Every exported read path on the store flows
// through populate; it is not opt-in per call.
package clubstore

import (
	"context"

	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// GetByID loads one club by ObjectID with its members populated.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PopulatedClub, error) {
	return s.FindOne(ctx, bson.M{"_id": id})
}

// GetByName loads one club by exact club name with its members populated.
func (s *Store) GetByName(ctx context.Context, name string) (*models.PopulatedClub, error) {
	return s.FindOne(ctx, bson.M{"club_name": name})
}

// FindOne loads a single club matching an arbitrary filter, members
// populated.
func (s *Store) FindOne(ctx context.Context, filter bson.M) (*models.PopulatedClub, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, filter).Decode(&c); err != nil {
		return nil, err
	}
	populated, err := s.populate(ctx, []models.Club{c})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// Find loads all clubs matching an arbitrary filter, members populated.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.PopulatedClub, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return s.populate(ctx, clubs)
}

// populate resolves every member reference across the given clubs with one
// $in query against users. The projection excludes the password field, so no
// read path can leak a member's hash. A reference to a user that no longer
// exists resolves to a nil entry (logged, not an error) — a stale reference
// must never abort the whole read.
func (s *Store) populate(ctx context.Context, clubs []models.Club) ([]models.PopulatedClub, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, c := range clubs {
		for _, id := range c.MemberIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	profiles := make(map[primitive.ObjectID]*models.MemberProfile, len(ids))
	if len(ids) > 0 {
		proj := options.Find().SetProjection(bson.M{"password": 0})
		cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var p models.MemberProfile
			if err := cur.Decode(&p); err != nil {
				return nil, err
			}
			profiles[p.ID] = &p
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]models.PopulatedClub, len(clubs))
	for i, c := range clubs {
		members := make([]*models.MemberProfile, len(c.MemberIDs))
		for j, id := range c.MemberIDs {
			if p, ok := profiles[id]; ok {
				members[j] = p
				continue
			}
			zap.L().Warn("club member reference did not resolve",
				zap.String("club", c.ClubName),
				zap.String("user_id", id.Hex()))
		}
		out[i] = models.PopulatedClub{Club: c, Members: members}
	}
	return out, nil
}
