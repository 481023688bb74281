package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], f.err
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	json.NewEncoder(w).Encode(identity)
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	log := logger.NewLoggerWithWriter(io.Discard)
	tokens := NewTokenService("test-secret", time.Hour)
	token, issued, err := tokens.Issue(testUser())
	require.NoError(t, err)

	revocations := &fakeRevocations{revoked: map[string]bool{}}
	h := Authenticate(tokens, revocations, log)(http.HandlerFunc(echoIdentity))

	t.Run("missing header", func(t *testing.T) {
		rec := serve(h, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", messageOf(t, rec))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := serve(h, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", messageOf(t, rec))
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := serve(h, "Bearer "+token+"x")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", messageOf(t, rec))
	})

	t.Run("valid token", func(t *testing.T) {
		rec := serve(h, "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)

		var identity models.Identity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
		assert.Equal(t, "user-1", identity.ID)
		assert.Equal(t, models.RoleUser, identity.Role)
	})

	t.Run("revoked token", func(t *testing.T) {
		revocations.revoked[issued.TokenID] = true
		defer delete(revocations.revoked, issued.TokenID)

		rec := serve(h, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", messageOf(t, rec))
	})

	t.Run("denylist unavailable", func(t *testing.T) {
		revocations.err = errors.New("redis down")
		defer func() { revocations.err = nil }()

		rec := serve(h, "Bearer "+token)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAuthenticate_WithoutDenylist(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	token, _, err := tokens.Issue(testUser())
	require.NoError(t, err)

	h := Authenticate(tokens, nil, logger.NewLoggerWithWriter(io.Discard))(http.HandlerFunc(echoIdentity))
	assert.Equal(t, http.StatusOK, serve(h, "Bearer "+token).Code)
}

func TestRequireRole(t *testing.T) {
	log := logger.NewLoggerWithWriter(io.Discard)
	tokens := NewTokenService("test-secret", time.Hour)

	userToken, _, err := tokens.Issue(testUser())
	require.NoError(t, err)
	admin := testUser()
	admin.ID, admin.Role = "admin-1", models.RoleAdmin
	adminToken, _, err := tokens.Issue(admin)
	require.NoError(t, err)

	h := Authenticate(tokens, nil, log)(RequireRole(models.RoleAdmin, log)(http.HandlerFunc(echoIdentity)))

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin only", messageOf(t, rec))

	rec = serve(h, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	h := RequireRole(models.RoleAdmin, logger.NewLoggerWithWriter(io.Discard))(http.HandlerFunc(echoIdentity))
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
}

func TestMustIdentity(t *testing.T) {
	_, err := MustIdentity(context.Background())
	assert.Error(t, err)

	ctx := WithIdentity(context.Background(), models.Identity{ID: "u"})
	identity, err := MustIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u", identity.ID)
}
