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

func (s *Storage) CreateArticle(ctx context.Context, article *domain.Article) (domain.ArticleId, error) {
	if err := schema.ValidateArticle(article); err != nil {
		return primitive.NilObjectID, err
	}

	article.Id = primitive.NewObjectID()
	if _, err := s.articles.InsertOne(ctx, article); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert article: %w", err)
	}
	return article.Id, nil
}

func (s *Storage) GetArticle(ctx context.Context, id domain.ArticleId) (domain.Article, error) {
	var article domain.Article
	err := s.articles.FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Article{}, notFound("Article")
		}
		return domain.Article{}, fmt.Errorf("failed to fetch article: %w", err)
	}
	return article, nil
}

// ReplaceArticle writes back a fully merged document. The caller is expected
// to have loaded the current document and re-validated changed fields;
// ArticleDate is immutable and must carry the original value.
func (s *Storage) ReplaceArticle(ctx context.Context, article *domain.Article) error {
	if err := schema.ValidateArticle(article); err != nil {
		return err
	}

	res, err := s.articles.ReplaceOne(ctx, bson.M{"_id": article.Id}, article)
	if err != nil {
		return fmt.Errorf("failed to replace article: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("Article")
	}
	return nil
}

func (s *Storage) DeleteArticle(ctx context.Context, id domain.ArticleId) error {
	res, err := s.articles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("Article")
	}
	return nil
}

func (s *Storage) ChunkArticles(ctx context.Context, q pagination.ChunkQuery) ([]domain.Article, error) {
	opts := options.Find().SetSort(q.Sort()).SetLimit(q.Limit)
	cursor, err := s.articles.Find(ctx, q.Filter("Article"), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query article chunk: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []domain.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode article chunk: %w", err)
	}
	return articles, nil
}
