package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"pulsegram/cmd/app"
	"pulsegram/internal/config"
	handlers "pulsegram/internal/handler"
	"pulsegram/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	requireAuth := middleware.RequireAuth(services.Auth)
	optionalAuth := middleware.OptionalAuth(services.Auth)

	router := mux.NewRouter()

	// unmatched routes answer the way clients expect
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	// setting up routes
	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)

	router.Handle("/api/posts/create", optionalAuth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/feed", handler.GetFeed).Methods(http.MethodGet)
	router.Handle("/api/posts/like/{postId}", requireAuth(http.HandlerFunc(handler.LikePost))).Methods(http.MethodPost)
	router.Handle("/api/posts/comment/{postId}", requireAuth(http.HandlerFunc(handler.CommentOnPost))).Methods(http.MethodPost)

	router.HandleFunc("/api/profile/{userId}", handler.GetProfile).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.RecoveryMiddleware,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path), http.StatusNotFound)
}
