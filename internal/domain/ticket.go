package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// UpdatableStatuses lists the values accepted by the status-update endpoint.
// Resolved exists only as a creation-time value and is not reachable here.
var UpdatableStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusClosed,
}

// IsUpdatable reports whether s is a valid target for a status update.
func (s TicketStatus) IsUpdatable() bool {
	for _, valid := range UpdatableStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Unresolved reports whether a ticket in this status counts against a
// technician's workload limit.
func (s TicketStatus) Unresolved() bool {
	return s == TicketStatusOpen || s == TicketStatusInProgress
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Ticket is the aggregate for support requests. Owned by exactly one client.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CategoryID  int64
	ClientID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
