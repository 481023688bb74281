package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/utils"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) error
}

type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Service struct {
	users   UserStore
	hasher  PasswordHasher
	tokens  *TokenService
	revoker Revoker
	logger  *logger.Logger
	now     func() time.Time
}

// NewService wires the auth service. revoker may be nil, which makes logout
// a no-op.
func NewService(users UserStore, hasher PasswordHasher, tokens *TokenService, revoker Revoker, log *logger.Logger) *Service {
	return &Service{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		logger:  log,
		now:     time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AUTH", fmt.Sprintf("User signed up: %s (%s)", user.ID, user.Email))

	return s.issue(*user)
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrRecordNotFound) {
		s.logger.LogSecurity("LOGIN_FAILED", fmt.Sprintf("unknown email %s", req.Email))
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Login failed", Err: err}
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			s.logger.LogSecurity("LOGIN_FAILED", fmt.Sprintf("wrong password for %s", user.ID))
			return nil, invalidCredentials()
		}
		return nil, domain.InternalError{Msg: "Login failed", Err: err}
	}

	s.logger.Info("AUTH", fmt.Sprintf("User logged in: %s", user.ID))
	return s.issue(*user)
}

// Logout revokes the token the identity was built from.
func (s *Service) Logout(ctx context.Context, identity models.Identity) error {
	if s.revoker == nil || identity.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return domain.InternalError{Msg: "Logout failed", Err: err}
	}
	s.logger.Info("AUTH", fmt.Sprintf("Token revoked for user %s", identity.ID))
	return nil
}

// Me returns the stored profile of the caller.
func (s *Service) Me(ctx context.Context, identity models.Identity) (*models.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, identity.ID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "User", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load user", Err: err}
	}
	public := user.Public()
	return &public, nil
}

// Provision creates an account with an explicit role. It is reachable only
// from the admin CLI.
func (s *Service) Provision(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, domain.NewFieldError("role", fmt.Sprintf("role must be %q or %q", models.RoleUser, models.RoleAdmin))
	}
	req := models.SignupRequest{
		Name:            strings.TrimSpace(name),
		Email:           NormalizeEmail(email),
		Password:        password,
		ConfirmPassword: password,
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	s.logger.LogSecurity("USER_PROVISIONED", fmt.Sprintf("%s (%s) role=%s", user.ID, user.Email, user.Role))
	return user, nil
}

// SetRole changes the role of the account registered under email.
func (s *Service) SetRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, domain.NewFieldError("role", fmt.Sprintf("role must be %q or %q", models.RoleUser, models.RoleAdmin))
	}

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "User", Err: err}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to load user", Err: err}
	}

	if err := s.users.UpdateUserRole(ctx, user.ID, role); err != nil {
		return nil, domain.InternalError{Msg: "Failed to update role", Err: err}
	}
	user.Role = role
	s.logger.LogSecurity("ROLE_CHANGED", fmt.Sprintf("%s (%s) role=%s", user.ID, user.Email, role))
	return user, nil
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, emailTaken(nil)
	case !errors.Is(err, domain.ErrRecordNotFound):
		return nil, domain.InternalError{Msg: "Signup failed", Err: err}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.InternalError{Msg: "Signup failed", Err: err}
	}

	user := &models.User{
		ID:           utils.GenerateID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, emailTaken(err)
		}
		return nil, domain.InternalError{Msg: "Signup failed", Err: err}
	}
	return user, nil
}

func (s *Service) issue(user models.User) (*models.AuthResponse, error) {
	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.InternalError{Msg: "Failed to issue token", Err: err}
	}
	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}

func invalidCredentials() error {
	return domain.UnauthorizedError{Msg: "Invalid credentials"}
}

func emailTaken(err error) error {
	return domain.ConflictError{Msg: "Email already registered", Err: err}
}
