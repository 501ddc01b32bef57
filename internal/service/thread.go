package service

import (
	"context"
	"net/http"
	"time"

	"github.com/Pangeneses/NeonServer/internal/domain"
	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
	"github.com/Pangeneses/NeonServer/internal/pagination"
	"github.com/Pangeneses/NeonServer/internal/sanitize"
)

type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	Get(ctx context.Context, id domain.ThreadId) (domain.ThreadListing, error)
	Chunk(ctx context.Context, q pagination.ChunkQuery) ([]domain.ThreadListing, error)
	Update(ctx context.Context, id domain.ThreadId, changes ThreadChanges) (domain.ThreadListing, error)
	Delete(ctx context.Context, id domain.ThreadId) error
}

type ThreadChanges struct {
	UserID     *domain.UserId
	Title      *string
	Image      *string
	Access     *int
	Category   *string
	Hashtags   *domain.Hashtags
	Visibility *bool
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, thread *domain.Thread, seed *domain.Post) (domain.ThreadId, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	ReplaceThread(ctx context.Context, thread *domain.Thread) error
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	ChunkThreads(ctx context.Context, q pagination.ChunkQuery) ([]domain.Thread, error)
	GetPostsByIDs(ctx context.Context, ids []domain.PostId) ([]domain.Post, error)
	GetUserSummaries(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserSummary, error)
}

type Thread struct {
	storage ThreadStorage
}

func NewThread(storage ThreadStorage) *Thread {
	return &Thread{storage}
}

// seedBody sanitizes the seed post and enforces its visible-length band.
// Seed posts use a tighter band than articles: they open a discussion rather
// than carry one.
func seedBody(raw string) (string, error) {
	cleaned := sanitize.Full(raw)
	visible := sanitize.VisibleLength(cleaned)
	if visible < 100 {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "ThreadPost must be at least 100 characters.",
			StatusCode: http.StatusBadRequest,
		}
	}
	if visible > 1000 {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "ThreadPost must be less than 1000 characters.",
			StatusCode: http.StatusBadRequest,
		}
	}
	return cleaned, nil
}

func (t *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	thread := data.Thread

	body, err := seedBody(data.SeedBody)
	if err != nil {
		return domain.Thread{}, err
	}

	category, err := sanitize.ValidateCategory(thread.ThreadCategory)
	if err != nil {
		return domain.Thread{}, err
	}
	thread.ThreadCategory = category

	if err := sanitize.ValidateHashtags(thread.ThreadHashtags); err != nil {
		return domain.Thread{}, err
	}

	if thread.ThreadImage == "" {
		thread.ThreadImage = domain.DefaultImage
	}
	if err := sanitize.ValidateImageFilename(thread.ThreadImage); err != nil {
		return domain.Thread{}, err
	}

	if thread.ThreadAccess < 0 || thread.ThreadAccess > 60 {
		return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
			Message:    "ThreadAccess must be a number between 0 and 60 (months).",
			StatusCode: http.StatusBadRequest,
		}
	}

	now := time.Now().UTC()
	if thread.ThreadDate.IsZero() {
		thread.ThreadDate = now
	}

	seed := domain.Post{
		PostUserID:     thread.ThreadUserID,
		PostBody:       body,
		PostDate:       thread.ThreadDate,
		PostVisibility: true,
	}

	if _, err := t.storage.CreateThread(ctx, &thread, &seed); err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}

func (t *Thread) Get(ctx context.Context, id domain.ThreadId) (domain.ThreadListing, error) {
	thread, err := t.storage.GetThread(ctx, id)
	if err != nil {
		return domain.ThreadListing{}, err
	}

	listings, err := t.enrich(ctx, []domain.Thread{thread})
	if err != nil {
		return domain.ThreadListing{}, err
	}
	return listings[0], nil
}

func (t *Thread) Chunk(ctx context.Context, q pagination.ChunkQuery) ([]domain.ThreadListing, error) {
	threads, err := t.storage.ChunkThreads(ctx, q)
	if err != nil {
		return nil, err
	}
	return t.enrich(ctx, threads)
}

// enrich is the explicit read-side join: batch-fetch every thread's seed post,
// then every seed author, then merge. One round trip per referenced
// collection regardless of chunk size.
func (t *Thread) enrich(ctx context.Context, threads []domain.Thread) ([]domain.ThreadListing, error) {
	seedIDs := make([]domain.PostId, 0, len(threads))
	for _, thread := range threads {
		if len(thread.ThreadPosts) > 0 {
			seedIDs = append(seedIDs, thread.ThreadPosts[0])
		}
	}

	seeds, err := t.storage.GetPostsByIDs(ctx, seedIDs)
	if err != nil {
		return nil, err
	}
	seedById := make(map[domain.PostId]domain.Post, len(seeds))
	authorIDs := make([]domain.UserId, 0, len(seeds))
	for _, seed := range seeds {
		seedById[seed.Id] = seed
		authorIDs = append(authorIDs, seed.PostUserID)
	}

	authors, err := t.storage.GetUserSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.ThreadListing, 0, len(threads))
	for _, thread := range threads {
		listing := domain.ThreadListing{Thread: thread}
		if len(thread.ThreadPosts) > 0 {
			if seed, ok := seedById[thread.ThreadPosts[0]]; ok {
				listing.SeedPostID = seed.Id
				listing.SeedBody = seed.PostBody
				if author, ok := authors[seed.PostUserID]; ok {
					listing.Author = &author
				}
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (t *Thread) Update(ctx context.Context, id domain.ThreadId, changes ThreadChanges) (domain.ThreadListing, error) {
	thread, err := t.storage.GetThread(ctx, id)
	if err != nil {
		return domain.ThreadListing{}, err
	}

	if changes.Category != nil {
		category, err := sanitize.ValidateCategory(*changes.Category)
		if err != nil {
			return domain.ThreadListing{}, err
		}
		thread.ThreadCategory = category
	}
	if changes.Hashtags != nil {
		if err := sanitize.ValidateHashtags(*changes.Hashtags); err != nil {
			return domain.ThreadListing{}, err
		}
		thread.ThreadHashtags = *changes.Hashtags
	}
	if changes.Image != nil {
		if err := sanitize.ValidateImageFilename(*changes.Image); err != nil {
			return domain.ThreadListing{}, err
		}
		thread.ThreadImage = *changes.Image
	}
	if changes.Access != nil {
		if *changes.Access < 0 || *changes.Access > 60 {
			return domain.ThreadListing{}, &internal_errors.ErrorWithStatusCode{
				Message:    "ThreadAccess must be a number between 0 and 60 (months).",
				StatusCode: http.StatusBadRequest,
			}
		}
		thread.ThreadAccess = *changes.Access
	}
	if changes.Title != nil {
		thread.ThreadTitle = *changes.Title
	}
	if changes.UserID != nil {
		thread.ThreadUserID = *changes.UserID
	}
	if changes.Visibility != nil {
		thread.ThreadVisibility = *changes.Visibility
	}
	// ThreadDate and ThreadPosts are immutable here; posts only grow through
	// the append operation.

	if err := t.storage.ReplaceThread(ctx, &thread); err != nil {
		return domain.ThreadListing{}, err
	}

	listings, err := t.enrich(ctx, []domain.Thread{thread})
	if err != nil {
		return domain.ThreadListing{}, err
	}
	return listings[0], nil
}

func (t *Thread) Delete(ctx context.Context, id domain.ThreadId) error {
	return t.storage.DeleteThread(ctx, id)
}
