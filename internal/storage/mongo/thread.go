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
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/schema"
)

// CreateThread inserts the seed post, then the thread referencing it, then
// points the post back at its thread. The writes are not transactional; a
// failure mid-sequence can leave an orphaned post, which is accepted (the
// thread itself only becomes visible once its own insert succeeds).
func (s *Storage) CreateThread(ctx context.Context, thread *domain.Thread, seed *domain.Post) (domain.ThreadId, error) {
	if err := schema.ValidateThread(thread); err != nil {
		return primitive.NilObjectID, err
	}
	if err := schema.ValidatePost(seed); err != nil {
		return primitive.NilObjectID, err
	}

	seed.Id = primitive.NewObjectID()
	if _, err := s.posts.InsertOne(ctx, seed); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert seed post: %w", err)
	}

	thread.Id = primitive.NewObjectID()
	thread.ThreadPosts = []domain.PostId{seed.Id}
	if _, err := s.threads.InsertOne(ctx, thread); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert thread: %w", err)
	}

	_, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": seed.Id},
		bson.M{"$set": bson.M{"PostToThread": thread.Id}},
	)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to link seed post to thread: %w", err)
	}
	seed.PostToThread = &thread.Id

	return thread.Id, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.threads.FindOne(ctx, bson.M{"_id": id}).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Thread{}, notFound("Thread")
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

func (s *Storage) ReplaceThread(ctx context.Context, thread *domain.Thread) error {
	if err := schema.ValidateThread(thread); err != nil {
		return err
	}

	res, err := s.threads.ReplaceOne(ctx, bson.M{"_id": thread.Id}, thread)
	if err != nil {
		return fmt.Errorf("failed to replace thread: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("Thread")
	}
	return nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	res, err := s.threads.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("Thread")
	}
	return nil
}

func (s *Storage) ChunkThreads(ctx context.Context, q pagination.ChunkQuery) ([]domain.Thread, error) {
	opts := options.Find().SetSort(q.Sort()).SetLimit(q.Limit)
	cursor, err := s.threads.Find(ctx, q.Filter("Thread"), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread chunk: %w", err)
	}
	defer cursor.Close(ctx)

	var threads []domain.Thread
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("failed to decode thread chunk: %w", err)
	}
	return threads, nil
}

// AppendPost links a new post to the current tail of the thread's reply chain
// and pushes its id onto the ordered post list. The read-tail/insert/push
// sequence is not mutually exclusive: two concurrent appends can observe the
// same tail. $push keeps the array append itself atomic, so no post id is
// ever lost, but PostToPost chains may then share a predecessor.
func (s *Storage) AppendPost(ctx context.Context, threadID domain.ThreadId, post *domain.Post) error {
	var thread struct {
		ThreadPosts []domain.PostId `bson:"ThreadPosts"`
	}
	err := s.threads.FindOne(ctx,
		bson.M{"_id": threadID},
		options.FindOne().SetProjection(bson.M{"ThreadPosts": 1}),
	).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound("Thread")
		}
		return fmt.Errorf("failed to fetch thread for append: %w", err)
	}

	post.PostToThread = &threadID
	if n := len(thread.ThreadPosts); n > 0 {
		tail := thread.ThreadPosts[n-1]
		post.PostToPost = &tail
	}

	if err := schema.ValidatePost(post); err != nil {
		return err
	}

	post.Id = primitive.NewObjectID()
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	_, err = s.threads.UpdateOne(ctx,
		bson.M{"_id": threadID},
		bson.M{"$push": bson.M{"ThreadPosts": post.Id}},
	)
	if err != nil {
		return fmt.Errorf("failed to append post to thread: %w", err)
	}
	return nil
}

// GetThreadPostIDs returns the ordered post id list for positional paging.
func (s *Storage) GetThreadPostIDs(ctx context.Context, threadID domain.ThreadId) ([]domain.PostId, error) {
	var thread struct {
		ThreadPosts []domain.PostId `bson:"ThreadPosts"`
	}
	err := s.threads.FindOne(ctx,
		bson.M{"_id": threadID},
		options.FindOne().SetProjection(bson.M{"ThreadPosts": 1}),
	).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Thread")
		}
		return nil, fmt.Errorf("failed to fetch thread posts: %w", err)
	}
	return thread.ThreadPosts, nil
}
