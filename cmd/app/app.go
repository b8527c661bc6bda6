package app

import (
	"log"

	"pulsegram/internal/config"
	"pulsegram/internal/database"
	"pulsegram/internal/repository"
	"pulsegram/internal/service"
	"pulsegram/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// image storage backend: local disk by default, MinIO when configured
	var store storage.Storage
	if cfg.StorageBackend == "minio" {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
		store = minioClient
	} else {
		store = storage.NewLocalStorage(cfg.UploadDir)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, store)

	return db, repo, services
}
