package service

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pangeneses/NeonServer/internal/domain"
	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/sanitize"
)

type PostService interface {
	Append(ctx context.Context, threadID domain.ThreadId, post domain.Post) (domain.Post, error)
	Chunk(ctx context.Context, threadID domain.ThreadId, lastID *primitive.ObjectID, direction pagination.Direction, limit int64) ([]domain.PostListing, error)
	Batch(ctx context.Context, ids []domain.PostId) ([]domain.PostListing, error)
}

type PostStorage interface {
	AppendPost(ctx context.Context, threadID domain.ThreadId, post *domain.Post) error
	GetThreadPostIDs(ctx context.Context, threadID domain.ThreadId) ([]domain.PostId, error)
	GetPostsByIDs(ctx context.Context, ids []domain.PostId) ([]domain.Post, error)
	GetUserSummaries(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserSummary, error)
}

type Post struct {
	storage PostStorage
}

func NewPost(storage PostStorage) *Post {
	return &Post{storage}
}

// Append sanitizes the reply body and hands it to storage, which links it to
// the thread's current tail. Appended posts may be empty; only the 3000
// visible-character ceiling applies.
func (p *Post) Append(ctx context.Context, threadID domain.ThreadId, post domain.Post) (domain.Post, error) {
	cleaned := sanitize.Full(post.PostBody)
	if sanitize.VisibleLength(cleaned) > 3000 {
		return domain.Post{}, &internal_errors.ErrorWithStatusCode{
			Message:    "PostBody must be less than 3000 characters.",
			StatusCode: http.StatusBadRequest,
		}
	}
	post.PostBody = cleaned

	if post.PostDate.IsZero() {
		post.PostDate = time.Now().UTC()
	}

	if err := p.storage.AppendPost(ctx, threadID, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Chunk pages through a thread's ordered post list positionally, then
// batch-fetches the window and its authors.
func (p *Post) Chunk(ctx context.Context, threadID domain.ThreadId, lastID *primitive.ObjectID, direction pagination.Direction, limit int64) ([]domain.PostListing, error) {
	ids, err := p.storage.GetThreadPostIDs(ctx, threadID)
	if err != nil {
		return nil, err
	}

	window := pagination.SliceWindow(ids, lastID, direction, limit)
	if len(window) == 0 {
		return []domain.PostListing{}, nil
	}
	return p.Batch(ctx, window)
}

func (p *Post) Batch(ctx context.Context, ids []domain.PostId) ([]domain.PostListing, error) {
	posts, err := p.storage.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]domain.UserId, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.PostUserID)
	}
	authors, err := p.storage.GetUserSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.PostListing, 0, len(posts))
	for _, post := range posts {
		listing := domain.PostListing{Post: post}
		if author, ok := authors[post.PostUserID]; ok {
			listing.Author = &author
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
