package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ClientService is thin persistence wrapping for client accounts.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService creates the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := s.clients.Create(ctx, client); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("client name or linked user already taken", map[string]any{"name": client.Name})
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": client.UserID})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// ClientUpdateInput captures editable client fields.
type ClientUpdateInput struct {
	Name         *string
	Company      *string
	ContactEmail *string
}

func (s *ClientService) Update(ctx context.Context, id int64, input ClientUpdateInput) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if input.ContactEmail != nil {
		client.ContactEmail = *input.ContactEmail
	}
	if err := s.clients.Update(ctx, client); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("client name already taken", map[string]any{"name": client.Name})
		}
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("client", map[string]any{"client_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
