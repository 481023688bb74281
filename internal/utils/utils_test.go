package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

func TestErrorResponse_StatusMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.NewFieldError("phone", "Invalid phone"), http.StatusBadRequest, "Invalid phone"},
		{domain.UnauthorizedError{Msg: "Invalid token"}, http.StatusUnauthorized, "Invalid token"},
		{domain.ForbiddenError{Msg: "Admin only"}, http.StatusForbidden, "Admin only"},
		{domain.NotFoundError{Resource: "Package"}, http.StatusNotFound, "Package not found"},
		{domain.ConflictError{Msg: "Email already registered"}, http.StatusConflict, "Email already registered"},
		{domain.InternalError{Msg: "Failed to create booking", Err: errors.New("disk full")}, http.StatusInternalServerError, "Failed to create booking"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		status, body := ErrorResponse(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestWriteError_DoesNotLeakInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.NewLoggerWithWriter(&strings.Builder{}), domain.InternalError{Err: errors.New("pq: password authentication failed")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestDecodeJSON(t *testing.T) {
	var dst models.LoginRequest

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "a@b.co", dst.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	err := DecodeJSON(httptest.NewRecorder(), req, &dst)
	assert.True(t, domain.IsValidation(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	err = DecodeJSON(httptest.NewRecorder(), req, &dst)
	assert.True(t, domain.IsValidation(err))
}

func TestValidateStruct_SignupMessages(t *testing.T) {
	err := ValidateStruct(models.SignupRequest{
		Name:            "A",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})
	require.Error(t, err)

	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))

	byPath := map[string]string{}
	for _, fe := range verr.Errors {
		byPath[fe.Path] = fe.Message
	}
	assert.Equal(t, "name must be at least 2 characters", byPath["name"])
	assert.Equal(t, "Invalid email", byPath["email"])
	assert.Equal(t, "password must be at least 8 characters", byPath["password"])
	assert.Equal(t, "Passwords must match", byPath["confirmPassword"])

	body, _ := json.Marshal(ErrorBody{Message: verr.Error(), Errors: verr.Errors})
	assert.Contains(t, string(body), `"path":"confirmPassword"`)
}

func TestValidateStruct_PackageRequest(t *testing.T) {
	days, price := 0, -1.0
	err := ValidateStruct(models.PackageRequest{
		Title:       "Goa",
		Description: "Beaches and forts",
		Location:    "Goa",
		Days:        &days,
		Price:       &price,
		ImageURL:    "not a url",
	})

	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr))
	paths := []string{}
	for _, fe := range verr.Errors {
		paths = append(paths, fe.Path)
	}
	assert.ElementsMatch(t, []string{"days", "price", "imageUrl"}, paths)

	days, price = 3, 0
	assert.NoError(t, ValidateStruct(models.PackageRequest{
		Title: "Goa", Description: "Beaches and forts", Location: "Goa", Days: &days, Price: &price,
	}))
	assert.Error(t, ValidateStruct(models.PackageRequest{
		Title: "Goa", Description: "Beaches and forts", Location: "Goa",
	}), "missing days and price must fail")
}

func TestParseCalendarDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	d, err := ParseCalendarDate("2026-10-20", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), d)

	// 20:00 UTC on the 19th is already the 20th in IST.
	d, err = ParseCalendarDate("2026-10-19T20:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseCalendarDate("2026-02-30", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseCalendarDate("", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGenerators(t *testing.T) {
	_, err := uuid.Parse(GenerateID())
	assert.NoError(t, err)
	assert.Equal(t, "receipt_1700000000123", GenerateReceipt(time.UnixMilli(1700000000123)))
	assert.True(t, IsEmail("traveller@example.com"))
	assert.False(t, IsEmail("traveller@"))
}
