package service

import (
	"pulsegram/internal/config"
	"pulsegram/internal/repository"
	"pulsegram/internal/storage"
)

type Service struct {
	Auth   AuthService
	Post   PostService
	Upload UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	uploads := NewUploadService(storage, cfg)

	return &Service{
		Auth:   NewAuthService(rep.User, uploads, cfg),
		Post:   NewPostService(rep.Post, rep.Comment, rep.User),
		Upload: uploads,
	}
}
