package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the uniqueness and filter indexes. Chunk queries
// always constrain and sort on _id, which is indexed by default; the
// secondary indexes below back the optional criteria.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "UserName", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "EMail", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "Cellphone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := s.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	for prefix, coll := range map[string]*mongo.Collection{"Article": s.articles, "Thread": s.threads} {
		indexes := []mongo.IndexModel{
			{Keys: bson.D{{Key: prefix + "UserID", Value: 1}}},
			{Keys: bson.D{{Key: prefix + "Category", Value: 1}}},
			{Keys: bson.D{{Key: prefix + "Hashtags", Value: 1}}},
			{Keys: bson.D{{Key: prefix + "Date", Value: 1}}},
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", prefix, err)
		}
	}

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "PostToThread", Value: 1}}},
	}
	if _, err := s.posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}
