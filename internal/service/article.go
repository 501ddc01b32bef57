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

type ArticleService interface {
	Create(ctx context.Context, article domain.Article) (domain.Article, error)
	Get(ctx context.Context, id domain.ArticleId) (domain.ArticleListing, error)
	Chunk(ctx context.Context, q pagination.ChunkQuery) ([]domain.ArticleListing, error)
	Update(ctx context.Context, id domain.ArticleId, changes ArticleChanges) (domain.ArticleListing, error)
	Delete(ctx context.Context, id domain.ArticleId) error
}

// ArticleChanges carries a partial or full update; nil fields are untouched
// and only present fields are re-validated.
type ArticleChanges struct {
	UserID     *domain.UserId
	Title      *string
	Body       *string
	Image      *string
	Category   *string
	Hashtags   *domain.Hashtags
	Visibility *bool
}

type ArticleStorage interface {
	CreateArticle(ctx context.Context, article *domain.Article) (domain.ArticleId, error)
	GetArticle(ctx context.Context, id domain.ArticleId) (domain.Article, error)
	ReplaceArticle(ctx context.Context, article *domain.Article) error
	DeleteArticle(ctx context.Context, id domain.ArticleId) error
	ChunkArticles(ctx context.Context, q pagination.ChunkQuery) ([]domain.Article, error)
	GetUserSummaries(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.UserSummary, error)
}

type Article struct {
	storage ArticleStorage
}

func NewArticle(storage ArticleStorage) *Article {
	return &Article{storage}
}

// articleBody runs the body through the full-markup pipeline and enforces the
// visible-length floor.
func articleBody(raw string) (string, error) {
	cleaned := sanitize.Full(raw)
	if sanitize.VisibleLength(cleaned) < 500 {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "Article must be at least 500 Characters.",
			StatusCode: http.StatusBadRequest,
		}
	}
	return cleaned, nil
}

func (a *Article) Create(ctx context.Context, article domain.Article) (domain.Article, error) {
	body, err := articleBody(article.ArticleBody)
	if err != nil {
		return domain.Article{}, err
	}
	article.ArticleBody = body

	category, err := sanitize.ValidateCategory(article.ArticleCategory)
	if err != nil {
		return domain.Article{}, err
	}
	article.ArticleCategory = category

	if err := sanitize.ValidateHashtags(article.ArticleHashtags); err != nil {
		return domain.Article{}, err
	}

	if article.ArticleImage == "" {
		article.ArticleImage = domain.DefaultImage
	}
	if err := sanitize.ValidateImageFilename(article.ArticleImage); err != nil {
		return domain.Article{}, err
	}

	article.ArticleDate = time.Now().UTC()

	if _, err := a.storage.CreateArticle(ctx, &article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (a *Article) Get(ctx context.Context, id domain.ArticleId) (domain.ArticleListing, error) {
	article, err := a.storage.GetArticle(ctx, id)
	if err != nil {
		return domain.ArticleListing{}, err
	}

	authors, err := a.storage.GetUserSummaries(ctx, []domain.UserId{article.ArticleUserID})
	if err != nil {
		return domain.ArticleListing{}, err
	}
	return joinArticle(article, authors), nil
}

func (a *Article) Chunk(ctx context.Context, q pagination.ChunkQuery) ([]domain.ArticleListing, error) {
	articles, err := a.storage.ChunkArticles(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]domain.UserId, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ArticleUserID)
	}
	authors, err := a.storage.GetUserSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.ArticleListing, 0, len(articles))
	for _, article := range articles {
		listings = append(listings, joinArticle(article, authors))
	}
	return listings, nil
}

func (a *Article) Update(ctx context.Context, id domain.ArticleId, changes ArticleChanges) (domain.ArticleListing, error) {
	article, err := a.storage.GetArticle(ctx, id)
	if err != nil {
		return domain.ArticleListing{}, err
	}

	if changes.Body != nil {
		body, err := articleBody(*changes.Body)
		if err != nil {
			return domain.ArticleListing{}, err
		}
		article.ArticleBody = body
	}
	if changes.Category != nil {
		category, err := sanitize.ValidateCategory(*changes.Category)
		if err != nil {
			return domain.ArticleListing{}, err
		}
		article.ArticleCategory = category
	}
	if changes.Hashtags != nil {
		if err := sanitize.ValidateHashtags(*changes.Hashtags); err != nil {
			return domain.ArticleListing{}, err
		}
		article.ArticleHashtags = *changes.Hashtags
	}
	if changes.Image != nil {
		if err := sanitize.ValidateImageFilename(*changes.Image); err != nil {
			return domain.ArticleListing{}, err
		}
		article.ArticleImage = *changes.Image
	}
	if changes.Title != nil {
		article.ArticleTitle = *changes.Title
	}
	if changes.UserID != nil {
		article.ArticleUserID = *changes.UserID
	}
	if changes.Visibility != nil {
		article.ArticleVisibility = *changes.Visibility
	}
	// ArticleDate is immutable and keeps its loaded value.

	if err := a.storage.ReplaceArticle(ctx, &article); err != nil {
		return domain.ArticleListing{}, err
	}

	authors, err := a.storage.GetUserSummaries(ctx, []domain.UserId{article.ArticleUserID})
	if err != nil {
		return domain.ArticleListing{}, err
	}
	return joinArticle(article, authors), nil
}

func (a *Article) Delete(ctx context.Context, id domain.ArticleId) error {
	return a.storage.DeleteArticle(ctx, id)
}

func joinArticle(article domain.Article, authors map[domain.UserId]domain.UserSummary) domain.ArticleListing {
	listing := domain.ArticleListing{Article: article}
	if author, ok := authors[article.ArticleUserID]; ok {
		listing.Author = &author
	}
	return listing
}
