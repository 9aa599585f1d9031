package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RoleService is thin persistence wrapping for roles.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService creates the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	if err := s.roles.Create(ctx, role); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("role name already exists", map[string]any{"name": string(role.Name)})
		}
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"role_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return roles, nil
}

func (s *RoleService) Update(ctx context.Context, id int64, name domain.RoleName) (*domain.Role, error) {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Name = name
	if err := s.roles.Update(ctx, role); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("role name already exists", map[string]any{"name": string(name)})
		}
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("role", map[string]any{"role_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
