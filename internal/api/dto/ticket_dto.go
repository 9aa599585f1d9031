package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload for ticket submission.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	CategoryID  int64                 `json:"category_id"`
	ClientID    int64                 `json:"client_id"`
}

// UpdateTicketRequest payload for admin ticket edits (status excluded).
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	CategoryID  *int64                 `json:"category_id"`
	ClientID    *int64                 `json:"client_id"`
}

// UpdateTicketStatusRequest payload for the status mutation path.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse serializes a ticket.
type TicketResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CategoryID  int64                 `json:"category_id"`
	ClientID    int64                 `json:"client_id"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
