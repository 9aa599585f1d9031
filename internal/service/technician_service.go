package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TechnicianService is thin persistence wrapping for technician profiles.
type TechnicianService struct {
	technicians repository.TechnicianRepository
}

// NewTechnicianService creates the service.
func NewTechnicianService(technicians repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicians: technicians}
}

func (s *TechnicianService) Create(ctx context.Context, technician *domain.Technician) (*domain.Technician, error) {
	if err := s.technicians.Create(ctx, technician); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": technician.UserID})
		}
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

func (s *TechnicianService) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	technician, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

func (s *TechnicianService) List(ctx context.Context) ([]domain.Technician, error) {
	technicians, err := s.technicians.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return technicians, nil
}

// TechnicianUpdateInput captures editable technician fields.
type TechnicianUpdateInput struct {
	Name         *string
	Speciality   *string
	Availability *string
}

func (s *TechnicianService) Update(ctx context.Context, id int64, input TechnicianUpdateInput) (*domain.Technician, error) {
	technician, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		technician.Name = *input.Name
	}
	if input.Speciality != nil {
		technician.Speciality = *input.Speciality
	}
	if input.Availability != nil {
		technician.Availability = *input.Availability
	}
	if err := s.technicians.Update(ctx, technician); err != nil {
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

func (s *TechnicianService) Delete(ctx context.Context, id int64) error {
	if err := s.technicians.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
