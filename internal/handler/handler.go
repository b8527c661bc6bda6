package handlers

import (
	"github.com/go-playground/validator/v10"
	"pulsegram/internal/config"
	"pulsegram/internal/repository"
	"pulsegram/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	PostService   service.PostService
	UploadService service.UploadService
	UserRepo      repository.UserRepository
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		PostService:   service.Post,
		UploadService: service.Upload,
		UserRepo:      repo.User,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
