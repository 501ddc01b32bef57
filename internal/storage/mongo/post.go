package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Pangeneses/NeonServer/internal/domain"
)

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Post{}, notFound("Post")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

// GetPostsByIDs batch-fetches posts and returns them in the order the ids
// were given, dropping ids that match nothing.
func (s *Storage) GetPostsByIDs(ctx context.Context, ids []domain.PostId) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.posts.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var fetched []domain.Post
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	byId := make(map[domain.PostId]domain.Post, len(fetched))
	for _, p := range fetched {
		byId[p.Id] = p
	}

	ordered := make([]domain.Post, 0, len(fetched))
	for _, id := range ids {
		if p, ok := byId[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
