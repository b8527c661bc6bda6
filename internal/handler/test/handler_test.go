package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"pulsegram/internal/config"
	handlers "pulsegram/internal/handler"
)

func createTestHandler(authService *MockAuthService, postService *MockPostService, uploadService *MockUploadService) *handlers.Handlers {
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    3000,
		MaxUploadSize: 5 * 1024 * 1024,
	}

	return &handlers.Handlers{
		AuthService:   authService,
		PostService:   postService,
		UploadService: uploadService,
		UserRepo:      &MockUserRepository{},
		Cfg:           cfg,
		Validate:      validator.New(),
	}
}

// assertJSONError checks the JSON response with an error
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response["error"])
}

// decodeBody decodes the successful JSON response
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}
