package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService coordinates registration and login over access records.
type AuthService struct {
	accesses   repository.AccessRepository
	clients    repository.ClientRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles repositories for the auth service.
type AuthDependencies struct {
	AccessRepo repository.AccessRepository
	ClientRepo repository.ClientRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accesses:   deps.AccessRepo,
		clients:    deps.ClientRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput is the registration payload: credentials plus links to an
// existing user and role.
type RegisterInput struct {
	Email    string
	Password string
	UserID   int64
	RoleID   int64
}

// Register creates a new access record with a bcrypt-hashed password. The
// hash never leaves this layer.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Access, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	access := &domain.Access{
		Email:        input.Email,
		PasswordHash: hash,
		UserID:       input.UserID,
		RoleID:       input.RoleID,
	}
	if err := s.accesses.Create(ctx, access); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email address already registered", map[string]any{"email": input.Email})
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("user or role", map[string]any{
				"user_id": input.UserID,
				"role_id": input.RoleID,
			})
		}
		return nil, apperrors.MapError(err)
	}
	return access, nil
}

// Login verifies credentials and issues a signed token. Client principals
// get their client id resolved into the claims for history checks.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	access, err := s.accesses.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	if access == nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(access.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	role := access.Role.Name
	var clientID *int64
	if role == domain.RoleClient {
		client, err := s.clients.GetByUserID(ctx, access.UserID)
		if err != nil {
			return "", time.Time{}, apperrors.MapError(err)
		}
		if client != nil {
			clientID = &client.ID
		}
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(access.UserID, access.Email, role, clientID)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, expiresAt, nil
}

// ListAccesses lists credential records for administration. Password
// hashes are stripped.
func (s *AuthService) ListAccesses(ctx context.Context) ([]domain.Access, error) {
	accesses, err := s.accesses.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range accesses {
		accesses[i].PasswordHash = ""
	}
	return accesses, nil
}

// DeleteAccess removes a credential record; absence is a 404.
func (s *AuthService) DeleteAccess(ctx context.Context, id int64) error {
	if err := s.accesses.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("access", map[string]any{"access_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
