package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/auth"
	"github.com/shenikar/emergency_reporting_system/internal/handler/http/legacy/mocks"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/shenikar/emergency_reporting_system/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "legacy-test-secret"

func newTestHandler(t *testing.T) (*mocks.MockUserStore, *auth.JWTProvider, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockUserStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	tokens := auth.NewJWTProvider(testSecret, time.Hour)
	handler := NewHandler(mockStore, tokens, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return mockStore, tokens, router
}

func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_Success(t *testing.T) {
	mockStore, _, router := newTestHandler(t)
	userID := uuid.New()

	mockStore.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.Equal(t, "Alice", user.Name)
			assert.Equal(t, "alice@example.com", user.Email)
			// The stored hash must verify against the submitted password.
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))
			user.ID = userID
			return nil
		}).Times(1)

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret!",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/signup", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestSignup_EmailTaken(t *testing.T) {
	mockStore, _, router := newTestHandler(t)

	mockStore.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(repository.ErrEmailTaken).Times(1)

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "s3cret!",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/signup", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestSignup_ValidationError(t *testing.T) {
	mockStore, _, router := newTestHandler(t)

	mockStore.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice",
		"email":    "not-an-email",
		"password": "s3cret!",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/signup", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email")
}

func TestLogin_Success(t *testing.T) {
	mockStore, tokens, router := newTestHandler(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}

	mockStore.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(user, nil).Times(1)

	body, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret!",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/login", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	principal, err := tokens.Verify(context.Background(), resp["token"])
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), principal.ID)
	assert.Equal(t, "Alice", principal.DisplayName)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockStore, _, router := newTestHandler(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}

	mockStore.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(user, nil).Times(1)

	body, _ := json.Marshal(map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/login", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockStore, _, router := newTestHandler(t)

	mockStore.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, repository.ErrUserNotFound).Times(1)

	body, _ := json.Marshal(map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	w := makeRequest(router, "POST", "/api/v1/legacy/login", bytes.NewBuffer(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestReport_RequiresToken(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/legacy/report", bytes.NewBufferString(`{"description":"fire"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReport_AcknowledgesWithToken(t *testing.T) {
	_, tokens, router := newTestHandler(t)
	token, err := tokens.Issue(&models.User{ID: uuid.New(), Name: "Alice"})
	require.NoError(t, err)

	w := makeRequest(router, "POST", "/api/v1/legacy/report",
		bytes.NewBufferString(`{"description":"fire"}`),
		map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Report submitted!")
}
