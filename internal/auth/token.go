package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

var (
	ErrMissingToken   = errors.New("authorization header is missing")
	ErrMalformedToken = errors.New("authorization header format must be 'Bearer {token}'")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims is the payload of an access token.
type Claims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for user and returns it with the identity it encodes.
func (s *TokenService) Issue(user models.User) (string, models.Identity, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	jti := uuid.New().String()

	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.Identity{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, models.Identity{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenID:   jti,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// Verify checks signature, algorithm and expiry and returns the identity.
func (s *TokenService) Verify(tokenString string) (models.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" || !claims.Role.Valid() {
		return models.Identity{}, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	identity := models.Identity{
		ID:      claims.ID,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.RegisteredClaims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// ExtractTokenFromRequest reads the bearer token from the Authorization header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedToken
	}

	return parts[1], nil
}
