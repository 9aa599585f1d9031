package policy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketSource resolves tickets for ownership checks. A missing ticket must
// surface as a NotFound domain error, never as a policy denial.
type TicketSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

// ClientSource resolves the client owning a ticket.
type ClientSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TechnicianSource translates a principal's user id into a technician
// identity. Absence is a valid answer and is reported as (nil, nil).
type TechnicianSource interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Technician, error)
}

// AssignmentSource answers membership queries over the live assignment set.
type AssignmentSource interface {
	IsTechnicianAssignedToTicket(ctx context.Context, technicianID, ticketID int64) (bool, error)
}

// Engine decides, per request, whether a principal may perform an action on
// a resource. Decisions are pure with respect to request state: the engine
// holds no per-request data and performs only read-only lookups.
type Engine struct {
	tickets     TicketSource
	clients     ClientSource
	technicians TechnicianSource
	assignments AssignmentSource
	logger      *zap.Logger
}

// Dependencies bundles the read-only sources the engine consults.
type Dependencies struct {
	Tickets     TicketSource
	Clients     ClientSource
	Technicians TechnicianSource
	Assignments AssignmentSource
}

// NewEngine creates the policy engine.
func NewEngine(deps Dependencies, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		tickets:     deps.Tickets,
		clients:     deps.Clients,
		technicians: deps.Technicians,
		assignments: deps.Assignments,
		logger:      logger,
	}
}

// Authorize evaluates the rules in strict order; the first matching rule
// decides. A nil return means ALLOW. Denials carry 403 semantics except for
// resource lookup misses, which propagate as 404.
func (e *Engine) Authorize(ctx context.Context, principal *auth.Principal, req Request) error {
	// 1. Public routes bypass everything, authenticated or not.
	if req.Public {
		return nil
	}

	// 2. Everything below needs a principal. 403, not 401: the absence of
	// credentials on a protected route is treated as a policy denial.
	if principal == nil {
		return apperrors.NewForbidden("authentication is required to access this resource")
	}

	// 3. Static role allowlist short-circuits; dynamic policy is never
	// consulted when the route declares roles.
	if len(req.Roles) > 0 {
		for _, role := range req.Roles {
			if principal.Role == role {
				return nil
			}
		}
		return apperrors.NewForbidden(fmt.Sprintf("role '%s' does not have access to this resource", principal.Role))
	}

	// 4. Administrators bypass all dynamic ownership checks.
	if principal.Role == domain.RoleAdministrator {
		return nil
	}

	// 5. Dynamic policy by route shape.
	switch req.Kind {
	case KindTicketCreate:
		if principal.Role == domain.RoleClient {
			return nil
		}
		return apperrors.NewForbidden("only clients are authorized to create new tickets")

	case KindTicketStatusUpdate:
		if principal.Role == domain.RoleTechnician {
			return e.requireAssignedTechnician(ctx, principal, req.TicketID)
		}
		return apperrors.NewForbidden("only assigned technicians can update ticket status")

	case KindTicketGet:
		switch principal.Role {
		case domain.RoleClient:
			return e.requireClientOwnership(ctx, principal, req.TicketID)
		case domain.RoleTechnician:
			return e.requireAssignedTechnician(ctx, principal, req.TicketID)
		}

	case KindClientTickets:
		if principal.Role == domain.RoleClient && principal.ClientID != nil && *principal.ClientID == req.ClientID {
			return nil
		}
		return apperrors.NewForbidden("access denied to view this ticket history")

	case KindTechnicianTickets:
		if principal.Role == domain.RoleTechnician {
			technician, err := e.technicians.GetByUserID(ctx, principal.UserID)
			if err != nil {
				return apperrors.MapError(err)
			}
			if technician != nil && technician.ID == req.TechnicianID {
				return nil
			}
			return apperrors.NewForbidden("technicians can only view their own assigned ticket list")
		}
	}

	// 6. Default deny.
	e.logger.Debug("policy default deny",
		zap.Int64("user_id", principal.UserID),
		zap.String("role", string(principal.Role)),
	)
	return apperrors.NewForbidden("access denied: no policy grants access to this resource")
}

// requireClientOwnership allows a client principal only when the ticket's
// owning client is linked to the principal's user. A ticket lookup miss
// propagates as NotFound, distinct from a denial.
func (e *Engine) requireClientOwnership(ctx context.Context, principal *auth.Principal, ticketID int64) error {
	ticket, err := e.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}

	client, err := e.clients.GetByID(ctx, ticket.ClientID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if client.UserID != principal.UserID {
		return apperrors.NewForbidden("client does not own this ticket")
	}
	return nil
}

// requireAssignedTechnician allows a technician principal only when their
// technician profile is currently assigned to the ticket.
func (e *Engine) requireAssignedTechnician(ctx context.Context, principal *auth.Principal, ticketID int64) error {
	technician, err := e.technicians.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if technician == nil {
		return apperrors.NewForbidden("technician profile not found for this user")
	}

	assigned, err := e.assignments.IsTechnicianAssignedToTicket(ctx, technician.ID, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !assigned {
		return apperrors.NewForbidden("technician is not assigned to this ticket")
	}
	return nil
}
