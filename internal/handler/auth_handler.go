package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"pulsegram/internal/models"
	"pulsegram/internal/service"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	ProfilePic string `json:"profilePic"`
}

type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	var picFile multipart.File
	var picHeader *multipart.FileHeader

	// profilePic comes either as a multipart file or as a base64 data URL in JSON
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

		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")

		if file, header, err := r.FormFile("profilePic"); err == nil {
			defer file.Close()
			picFile, picHeader = file, header
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		// anything that is not a data URL is dropped here, never stored as-is
		if req.ProfilePic != "" && !strings.HasPrefix(req.ProfilePic, "data:image/") {
			req.ProfilePic = ""
		}
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, "Все поля обязательны", http.StatusBadRequest)
		return
	}

	// email verification
	if !emailPattern.MatchString(req.Email) {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 6 {
		WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// the file hits storage only after the request passes validation,
	// so a rejected registration leaves no orphan uploads
	if picFile != nil {
		path, err := h.UploadService.SaveMultipart(r.Context(), picFile, picHeader, "profile-pics")
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		req.ProfilePic = path
	}

	serviceReq := service.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
	}

	// registering a user in the service
	user, token, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// forming the response
	response := AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.PublicView(),
	}

	WriteSuccess(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Email и пароль обязательны", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		}
		return
	}

	// logging in
	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// forming the response
	response := AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.PublicView(),
	}

	WriteSuccess(w, response, http.StatusOK)
}
