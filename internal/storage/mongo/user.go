package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pangeneses/NeonServer/internal/domain"
	"github.com/Pangeneses/NeonServer/internal/schema"
)

func (s *Storage) CreateUser(ctx context.Context, user *domain.User) (domain.UserId, error) {
	if err := schema.ValidateUser(user); err != nil {
		return primitive.NilObjectID, err
	}

	user.Id = primitive.NewObjectID()
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, duplicateKeyError(err)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to insert user: %w", err)
	}
	return user.Id, nil
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, notFound("User")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) GetUserByName(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	err := s.users.FindOne(ctx, bson.M{"UserName": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, notFound("User")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user by name: %w", err)
	}
	return user, nil
}

func (s *Storage) ReplaceUser(ctx context.Context, user *domain.User) error {
	if err := schema.ValidateUser(user); err != nil {
		return err
	}

	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.Id}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("failed to replace user: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("User")
	}
	return nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	opts := options.Find().SetProjection(bson.M{"UserName": 1})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.UserSummary
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}
	return users, nil
}

// ScanUsers pages through users whose UserName matches the regex pattern,
// cursored on _id like every other chunk query. An empty pattern matches all.
func (s *Storage) ScanUsers(ctx context.Context, q domain.UserScanQuery) ([]domain.UserSummary, error) {
	filter := bson.M{}
	if q.Pattern != "" {
		filter["UserName"] = bson.M{"$regex": q.Pattern}
	}

	order := -1
	if q.Ascending {
		order = 1
	}
	if q.LastID != nil {
		if q.Ascending {
			filter["_id"] = bson.M{"$gt": *q.LastID}
		} else {
			filter["_id"] = bson.M{"$lt": *q.LastID}
		}
	}

	opts := options.Find().
		SetProjection(bson.M{"UserName": 1, "Avatar": 1}).
		SetSort(bson.D{{Key: "_id", Value: order}}).
		SetLimit(q.Limit)

	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.UserSummary
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user scan: %w", err)
	}
	return users, nil
}

// GetUserSummaries batch-fetches the users referenced by a chunk of articles,
// threads or posts: the read-side half of the join.
func (s *Storage) GetUserSummaries(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserSummary, error) {
	if len(ids) == 0 {
		return map[domain.UserId]domain.UserSummary{}, nil
	}

	opts := options.Find().SetProjection(bson.M{"UserName": 1, "Avatar": 1})
	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query user summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var fetched []domain.UserSummary
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("failed to decode user summaries: %w", err)
	}

	byId := make(map[domain.UserId]domain.UserSummary, len(fetched))
	for _, u := range fetched {
		byId[u.Id] = u
	}
	return byId, nil
}
