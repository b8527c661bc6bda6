package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pulsegram/internal/repository"
	"pulsegram/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps sentinel errors from the lower layers onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPostNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrEmailTaken):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidToken):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrEmptyPost),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidImage):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrFileTooLarge):
		WriteError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, service.ErrUnsupportedMedia):
		WriteError(w, err.Error(), http.StatusUnsupportedMediaType)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
