package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pulsegram/internal/config"
	"pulsegram/internal/models"
	"pulsegram/internal/repository"
)

type RegisterRequest struct {
	Name       string
	Email      string
	Password   string
	ProfilePic string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	IssueToken(userID string, ttl time.Duration) (string, error)
	VerifyToken(tokenString string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	uploads  UploadService
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, uploads UploadService, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		uploads:  uploads,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, "", fmt.Errorf("%w: %s", repository.ErrEmailTaken, req.Email)
	}

	// a data URL gets decoded to storage; anything else is already a stored
	// reference produced by the multipart path
	profilePicPath := req.ProfilePic
	if strings.HasPrefix(req.ProfilePic, "data:image/") {
		profilePicPath, err = s.uploads.SaveDataURL(ctx, req.ProfilePic, "profile-pics")
		if err != nil {
			return nil, "", err
		}
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		ProfilePic: profilePicPath,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.UserID, s.cfg.RegisterTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	// login session outlives the registration token
	token, err := s.IssueToken(user.UserID, s.cfg.LoginTokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return user, token, nil
}

func (s *authService) IssueToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(ttl).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// VerifyToken checks the signature and expiry and returns the embedded user id.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
