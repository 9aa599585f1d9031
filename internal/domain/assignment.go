package domain

import "time"

// Assignment binds one technician to one ticket. The pair
// (technician_id, ticket_id) is unique across all live assignments; the
// database enforces this with a unique constraint.
type Assignment struct {
	ID           int64
	TechnicianID int64
	TicketID     int64
	AssignedAt   time.Time
}
