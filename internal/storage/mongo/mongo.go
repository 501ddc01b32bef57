// Package mongo is the document persistence binding: per-entity CRUD and the
// indexed range queries behind the chunk endpoints. The declarative schema
// tables are evaluated here before every write as the defensive layer behind
// the request pipeline.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

type Storage struct {
	client *mongo.Client

	users    *mongo.Collection
	articles *mongo.Collection
	threads  *mongo.Collection
	posts    *mongo.Collection
}

func New(ctx context.Context, uri, dbname string) (*Storage, error) {
	slog.Info("connecting to mongodb")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	slog.Info("successfully connected to mongodb")

	db := client.Database(dbname)
	s := &Storage{
		client:   client,
		users:    db.Collection("users"),
		articles: db.Collection("articles"),
		threads:  db.Collection("threads"),
		posts:    db.Collection("posts"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Cleanup(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func notFound(resource string) error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    resource + " not found",
		StatusCode: http.StatusNotFound,
	}
}

// duplicateKeyError maps a unique-index violation to a 400 with the
// uniqueness message for the offending field.
func duplicateKeyError(err error) error {
	msg := "Duplicate value for a unique field."
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			switch {
			case strings.Contains(e.Message, "UserName"):
				msg = "UserName must be unique."
			case strings.Contains(e.Message, "EMail"):
				msg = "Another account uses this email."
			case strings.Contains(e.Message, "Cellphone"):
				msg = "Cellphone is used by another account"
			}
		}
	}
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}
