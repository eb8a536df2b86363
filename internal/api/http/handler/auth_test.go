package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comfyui-plus/backend/internal/apperr"
	"github.com/comfyui-plus/backend/internal/model"
	"github.com/comfyui-plus/backend/internal/testutil"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	args := m.Called(ctx, username, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth_Register_Created(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	svc := &mockAuthService{}
	svc.On("Register", mock.Anything, "alice", "alice@x.com", "password123").
		Return(model.User{ID: 1, Username: "alice", Email: "alice@x.com", CreatedAt: now, UpdatedAt: now}, nil)

	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@x.com","password":"password123"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully.", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@x.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuth_Register_InvalidJSON(t *testing.T) {
	h := NewAuth(&mockAuthService{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username": `))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON payload.", decodeBody(t, rec)["error"])
}

func TestAuth_Register_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        apperr.NewValidation("Password must be at least 8 characters long."),
			wantStatus: http.StatusBadRequest,
			wantError:  "Password must be at least 8 characters long.",
		},
		{
			name:       "conflict",
			err:        apperr.NewConflict("Username or email already exists."),
			wantStatus: http.StatusConflict,
			wantError:  "Username or email already exists.",
		},
		{
			name:       "internal",
			err:        apperr.NewInternal("Failed to register user. Please try again.", assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to register user. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			svc.On("Register", mock.Anything, "alice", "alice@x.com", "password123").
				Return(model.User{}, tt.err)

			h := NewAuth(svc, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"alice","email":"alice@x.com","password":"password123"}`))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
		})
	}
}

func TestAuth_Login_Success(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Login", mock.Anything, "alice@x.com", "password123").Return("signed-token", nil)

	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"identifier":"alice@x.com","password":"password123"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful.", body["message"])
	assert.Equal(t, "signed-token", body["token"])
}

func TestAuth_Login_IdentifierFieldFallback(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		wantIdentifier string
	}{
		{"email field", `{"email":"alice@x.com","password":"password123"}`, "alice@x.com"},
		{"username field", `{"username":"alice","password":"password123"}`, "alice"},
		{"identifier wins over email", `{"identifier":"bob","email":"alice@x.com","password":"password123"}`, "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			svc.On("Login", mock.Anything, tt.wantIdentifier, "password123").Return("signed-token", nil)

			h := NewAuth(svc, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuth_Login_Unauthorized(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Login", mock.Anything, "alice@x.com", "wrongpassword").Return("", apperr.NewUnauthorized())

	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"identifier":"alice@x.com","password":"wrongpassword"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", decodeBody(t, rec)["error"])
}

func TestAuth_Login_InvalidJSON(t *testing.T) {
	h := NewAuth(&mockAuthService{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON payload.", decodeBody(t, rec)["error"])
}

func TestWriteError_UnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error.", decodeBody(t, rec)["error"])
}
