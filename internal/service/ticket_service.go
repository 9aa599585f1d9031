package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService owns ticket CRUD and the status mutation path.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService creates the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// TicketCreateInput captures client-submitted ticket fields.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	CategoryID  int64
	ClientID    int64
}

// TicketUpdateInput captures admin-editable ticket fields. Status is
// excluded; it has its own path.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	CategoryID  *int64
	ClientID    *int64
}

// Create persists a new ticket. New tickets start Open; an FK violation on
// category or client surfaces as a 404 on the referenced entity.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CategoryID:  input.CategoryID,
		ClientID:    input.ClientID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("category or client", map[string]any{
				"category_id": input.CategoryID,
				"client_id":   input.ClientID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTicketCreated, ticket.ID, events.TicketCreatedPayload{
		CategoryID: ticket.CategoryID,
		ClientID:   ticket.ClientID,
		Priority:   ticket.Priority,
		Title:      ticket.Title,
	})
	return ticket, nil
}

// GetByID fetches a ticket; absence is a 404.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns all tickets.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListByClient returns a client's ticket history.
func (s *TicketService) ListByClient(ctx context.Context, clientID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListByTechnician returns the tickets currently assigned to a technician.
func (s *TicketService) ListByTechnician(ctx context.Context, technicianID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Update applies admin edits to ticket detail fields.
func (s *TicketService) Update(ctx context.Context, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.CategoryID != nil {
		ticket.CategoryID = *input.CategoryID
	}
	if input.ClientID != nil {
		ticket.ClientID = *input.ClientID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("category or client", nil)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// UpdateStatus moves a ticket to a new status. Only Open, In Progress and
// Closed are reachable here; validation runs before any persistence.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.IsUpdatable() {
		valid := make([]string, 0, len(domain.UpdatableStatuses))
		for _, v := range domain.UpdatableStatuses {
			valid = append(valid, string(v))
		}
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid status: must be one of %s", strings.Join(valid, ", ")),
			map[string]any{"status": string(status)},
		)
	}

	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status

	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	ticket.Status = status

	s.logger.Info("ticket status changed",
		zap.Int64("ticket_id", id),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)),
	)
	s.publish(ctx, events.EventTicketStatusChanged, id, events.TicketStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return ticket, nil
}

// Delete removes a ticket; absence is a 404.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, ticketID int64, payload interface{}) {
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
