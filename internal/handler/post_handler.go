package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"pulsegram/internal/models"
	"pulsegram/internal/repository"
	"pulsegram/internal/service"
)

type PostCreatedResponse struct {
	Message string       `json:"message"`
	Post    *models.Post `json:"post"`
}

type LikeResponse struct {
	Message    string `json:"message"`
	IsLiked    bool   `json:"isLiked"`
	LikesCount int    `json:"likesCount"`
}

type CommentCreatedResponse struct {
	Message string          `json:"message"`
	Comment *models.Comment `json:"comment"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Image    string `json:"image"`
		AuthorID string `json:"authorId"`
	}
	var imgFile multipart.File
	var imgHeader *multipart.FileHeader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1024*1024)

		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				WriteError(w, "Файл слишком большой", http.StatusRequestEntityTooLarge)
			} else {
				WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
			}
			return
		}

		req.Text = r.FormValue("text")
		req.AuthorID = r.FormValue("authorId")

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			imgFile, imgHeader = file, header
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
	}

	// a verified token wins over the client-supplied authorId
	if userID, ok := r.Context().Value("userID").(string); ok && userID != "" {
		req.AuthorID = userID
	}

	if req.AuthorID == "" {
		WriteError(w, "Отсутствует authorId", http.StatusBadRequest)
		return
	}

	// nothing is written to storage until the request passes validation
	if imgFile != nil {
		path, err := h.UploadService.SaveMultipart(r.Context(), imgFile, imgHeader, "posts")
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		req.Image = path
	} else if strings.HasPrefix(req.Image, "data:image/") {
		// inline data URL gets decoded to storage, plain URLs pass through
		path, err := h.UploadService.SaveDataURL(r.Context(), req.Image, "posts")
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		req.Image = path
	}

	serviceReq := service.CreatePostRequest{
		AuthorID: req.AuthorID,
		Text:     req.Text,
		Image:    req.Image,
	}

	// creating a post
	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		// an unresolvable author is a bad reference in the request body
		if errors.Is(err, repository.ErrUserNotFound) {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		WriteServiceError(w, err)
		return
	}

	response := PostCreatedResponse{
		Message: "Post created successfully",
		Post:    post,
	}

	WriteSuccess(w, response, http.StatusCreated)
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	// absent or non-numeric parameters fall back to 1/10
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = service.DefaultPage
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = service.DefaultLimit
	}

	feed, err := h.PostService.GetFeed(r.Context(), page, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, feed, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	// acting identity comes from the verified token only
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	isLiked, likesCount, err := h.PostService.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	response := LikeResponse{
		Message:    "Post liked/unliked successfully",
		IsLiked:    isLiked,
		LikesCount: likesCount,
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) CommentOnPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	comment, err := h.PostService.CommentOnPost(r.Context(), postID, userID, req.Text)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	response := CommentCreatedResponse{
		Message: "Comment added successfully",
		Comment: comment,
	}

	WriteSuccess(w, response, http.StatusCreated)
}
