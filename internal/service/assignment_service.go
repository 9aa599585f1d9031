package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// MaxUnresolvedTickets caps how many Open or In Progress tickets a
// technician may hold at assignment-creation time.
const MaxUnresolvedTickets = 5

// AssignmentService manages technician-ticket bindings and enforces the
// pair-uniqueness and workload invariants.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	technicians repository.TechnicianRepository
	tickets     repository.TicketRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	TechnicianRepo repository.TechnicianRepository
	TicketRepo     repository.TicketRepository
	Dispatcher     events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		technicians: deps.TechnicianRepo,
		tickets:     deps.TicketRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Assign binds a technician to a ticket. Checks run in a fixed order:
// duplicate pair, entity existence, workload limit, insert. The duplicate
// pre-check is advisory; the unique constraint on (technician_id,
// ticket_id) is the real guarantee, and a constraint violation at insert
// time is reported as the same conflict. The workload check is best-effort
// under concurrent assignment of the same technician.
func (s *AssignmentService) Assign(ctx context.Context, technicianID, ticketID int64) (*domain.Assignment, error) {
	exists, err := s.assignments.Exists(ctx, technicianID, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, duplicateAssignment(technicianID, ticketID)
	}

	if _, err := s.technicians.GetByID(ctx, technicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	unresolvedCount, err := s.assignments.CountUnresolvedByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if unresolvedCount >= MaxUnresolvedTickets {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("technician %d cannot be assigned: %d unresolved tickets, limit is %d",
				technicianID, unresolvedCount, MaxUnresolvedTickets),
			map[string]any{
				"technician_id":    technicianID,
				"unresolved_count": unresolvedCount,
				"limit":            MaxUnresolvedTickets,
			},
		)
	}

	assignment := &domain.Assignment{
		TechnicianID: technicianID,
		TicketID:     ticketID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the race against a concurrent identical assignment.
			return nil, duplicateAssignment(technicianID, ticketID)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("technician or ticket", map[string]any{
				"technician_id": technicianID,
				"ticket_id":     ticketID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("technician assigned",
		zap.Int64("assignment_id", assignment.ID),
		zap.Int64("technician_id", technicianID),
		zap.Int64("ticket_id", ticketID),
		zap.Int("unresolved_count", unresolvedCount+1),
	)
	s.publish(ctx, events.EventTicketAssigned, ticketID, events.TicketAssignedPayload{
		AssignmentID: assignment.ID,
		TechnicianID: technicianID,
	})
	return assignment, nil
}

// GetByID fetches a single assignment; absence is a 404.
func (s *AssignmentService) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// List returns all live assignments.
func (s *AssignmentService) List(ctx context.Context) ([]domain.Assignment, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// ListByTechnician returns the live assignments held by a technician.
func (s *AssignmentService) ListByTechnician(ctx context.Context, technicianID int64) ([]domain.Assignment, error) {
	assignments, err := s.assignments.ListByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// Unassign removes an assignment by id. Absence is a 404; the linked
// ticket's status is untouched.
func (s *AssignmentService) Unassign(ctx context.Context, id int64) error {
	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{"assignment_id": id})
		}
		return apperrors.MapError(err)
	}

	s.logger.Info("technician unassigned",
		zap.Int64("assignment_id", id),
		zap.Int64("technician_id", assignment.TechnicianID),
		zap.Int64("ticket_id", assignment.TicketID),
	)
	s.publish(ctx, events.EventTicketUnassigned, assignment.TicketID, events.TicketUnassignedPayload{
		AssignmentID: assignment.ID,
		TechnicianID: assignment.TechnicianID,
	})
	return nil
}

// IsTechnicianAssignedToTicket answers the policy engine's membership
// query. Absence of an assignment is a valid answer, not an error.
func (s *AssignmentService) IsTechnicianAssignedToTicket(ctx context.Context, technicianID, ticketID int64) (bool, error) {
	assigned, err := s.assignments.Exists(ctx, technicianID, ticketID)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return assigned, nil
}

func duplicateAssignment(technicianID, ticketID int64) error {
	return apperrors.NewConflict(
		fmt.Sprintf("technician %d is already assigned to ticket %d", technicianID, ticketID),
		map[string]any{
			"technician_id": technicianID,
			"ticket_id":     ticketID,
		},
	)
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, ticketID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
