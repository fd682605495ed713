package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/models"
)

const testSecret = "test-secret"

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}

func (f *fakeUsers) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return nil, assert.AnError
}

func signToken(t *testing.T, userID string, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authChain(users *fakeUsers, adminOnly bool) http.Handler {
	var inner http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context()) + ":" + GetUserRole(r.Context())))
	})
	if adminOnly {
		inner = RequireAdmin(inner)
	}
	return Auth(nil, users, testSecret)(inner)
}

func TestAuthValidJWT(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleUser},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret, time.Hour))
	rec := httptest.NewRecorder()

	authChain(users, false).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1:USER", rec.Body.String())
}

func TestAuthMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	authChain(&fakeUsers{}, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	authChain(&fakeUsers{}, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleUser},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret, -time.Hour))
	rec := httptest.NewRecorder()

	authChain(users, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWrongSecret(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", "other-secret", time.Hour))
	rec := httptest.NewRecorder()

	authChain(&fakeUsers{}, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminForbidsUsers(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"user-1":  {ID: "user-1", Role: models.RoleUser},
		"admin-1": {ID: "admin-1", Role: models.RoleAdmin},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret, time.Hour))
	rec := httptest.NewRecorder()
	authChain(users, true).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin-1", testSecret, time.Hour))
	rec = httptest.NewRecorder()
	authChain(users, true).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
