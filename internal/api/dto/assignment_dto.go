package dto

import "time"

// CreateAssignmentRequest payload for assigning a technician to a ticket.
type CreateAssignmentRequest struct {
	TechnicianID int64 `json:"technician_id"`
	TicketID     int64 `json:"ticket_id"`
}

// AssignmentResponse serializes an assignment.
type AssignmentResponse struct {
	ID           int64     `json:"id"`
	TechnicianID int64     `json:"technician_id"`
	TicketID     int64     `json:"ticket_id"`
	AssignedAt   time.Time `json:"assigned_at"`
}
