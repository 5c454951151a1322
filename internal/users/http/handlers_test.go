package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenforge/screenforge-backend/internal/auth"
	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

type fakeService struct {
	users    map[string]*domain.User
	err      error
	lastName string
}

func (f *fakeService) EnsureUser(_ context.Context, name, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	f.lastName = name
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	u := &domain.User{ID: 1, Name: name, Email: email, Credits: 5}
	f.users[email] = u
	return u, nil
}

func (f *fakeService) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func setupRouter(svc Service, email, name string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{Email: email, Name: name})
		c.Next()
	})
	New(svc).Register(r.Group("/api/v1/users"))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetByEmail(t *testing.T) {
	svc := &fakeService{users: map[string]*domain.User{
		"ada@example.com": {ID: 1, Name: "Ada", Email: "ada@example.com", Credits: 5},
	}}

	t.Run("own record", func(t *testing.T) {
		r := setupRouter(svc, "ada@example.com", "Ada")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users?email=ada@example.com", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		user := decode(t, w)["user"].(map[string]any)
		assert.Equal(t, "Ada", user["name"])
	})

	t.Run("unknown user is null", func(t *testing.T) {
		r := setupRouter(svc, "new@example.com", "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode(t, w)["user"])
	})

	t.Run("someone else's record is hidden", func(t *testing.T) {
		r := setupRouter(svc, "eve@example.com", "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users?email=ada@example.com", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode(t, w)["user"])
	})
}

func TestEnsure(t *testing.T) {
	t.Run("body name wins", func(t *testing.T) {
		svc := &fakeService{users: map[string]*domain.User{}}
		r := setupRouter(svc, "ada@example.com", "Token Name")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(`{"name":"Ada"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada", svc.lastName)
		user := decode(t, w)["user"].(map[string]any)
		assert.Equal(t, float64(5), user["credits"])
	})

	t.Run("empty body uses token name", func(t *testing.T) {
		svc := &fakeService{users: map[string]*domain.User{}}
		r := setupRouter(svc, "ada@example.com", "Token Name")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Token Name", svc.lastName)
	})

	t.Run("missing email", func(t *testing.T) {
		r := setupRouter(&fakeService{users: map[string]*domain.User{}}, "", "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		r := setupRouter(&fakeService{err: errors.New("db down")}, "ada@example.com", "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decode(t, w)["ok"])
	})
}
