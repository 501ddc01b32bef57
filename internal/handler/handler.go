package handler

import (
	"github.com/Pangeneses/NeonServer/internal/config"
	"github.com/Pangeneses/NeonServer/internal/service"
)

type Handler struct {
	article service.ArticleService
	thread  service.ThreadService
	post    service.PostService
	user    service.UserService
	image   service.ImageService
	cfg     *config.Config
}

func New(article service.ArticleService, thread service.ThreadService, post service.PostService, user service.UserService, image service.ImageService, cfg *config.Config) *Handler {
	return &Handler{article, thread, post, user, image, cfg}
}
