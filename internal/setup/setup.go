package setup

import (
	"context"

	"github.com/Pangeneses/NeonServer/internal/config"
	"github.com/Pangeneses/NeonServer/internal/handler"
	"github.com/Pangeneses/NeonServer/internal/service"
	"github.com/Pangeneses/NeonServer/internal/storage/fs"
	"github.com/Pangeneses/NeonServer/internal/storage/mongo"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *mongo.Storage
	Images  *fs.Storage
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := mongo.New(ctx, cfg.Private.MongoURI, cfg.Public.Dbname)
	if err != nil {
		return nil, err
	}

	images, err := fs.New(cfg.Public.ImagesDir)
	if err != nil {
		return nil, err
	}

	article := service.NewArticle(storage)
	thread := service.NewThread(storage)
	post := service.NewPost(storage)
	user := service.NewUser(storage)
	image := service.NewImage(images, cfg.Public.MaxImageSizeBytes)

	h := handler.New(article, thread, post, user, image, cfg)

	return &Dependencies{
		Storage: storage,
		Images:  images,
		Handler: h,
		Config:  cfg,
	}, nil
}
