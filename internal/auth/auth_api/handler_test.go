package auth_api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth/auth_api"
	authdb "github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/auth/db"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database/dbtest"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

func setupRouter(t *testing.T) http.Handler {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	log := logger.NewLoggerWithWriter(io.Discard)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	denylist := auth.NewRedisDenylist(client)
	svc := auth.NewService(&authdb.DB{Bun: dbtest.NewSQLite(t)}, auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens, denylist, log)

	r := chi.NewRouter()
	auth_api.NewHandler(svc, log).RegisterRoutes(r, auth.Authenticate(tokens, denylist, log))
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignupLoginMeLogout(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "supersecret", "confirmPassword": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var signup models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "asha@example.com", signup.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, h, http.MethodPost, "/auth/login", "", map[string]string{"email": "asha@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = do(t, h, http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, signup.User.ID, me.ID)

	rec = do(t, h, http.MethodPost, "/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/auth/me", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "revoked token must be rejected")
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/auth/me", signup.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "other sessions stay valid")
}

func TestSignup_ErrorsBody(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "supersecret", "confirmPassword": "other-secret",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Validation failed","errors":[{"path":"confirmPassword","message":"Passwords must match"}]}`, rec.Body.String())

	valid := map[string]string{"name": "Asha", "email": "asha@example.com", "password": "supersecret", "confirmPassword": "supersecret"}
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/auth/signup", "", valid).Code)

	valid["email"] = "ASHA@example.com"
	rec = do(t, h, http.MethodPost, "/auth/signup", "", valid)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Email already registered"}`, rec.Body.String())
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	h := setupRouter(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "supersecret", "confirmPassword": "supersecret",
	}).Code)

	wrong := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{"email": "asha@example.com", "password": "bad-password"})
	unknown := do(t, h, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "bad-password"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestMe_RequiresToken(t *testing.T) {
	h := setupRouter(t)
	rec := do(t, h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}
