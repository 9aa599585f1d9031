package policy

import "github.com/spec-kit/helpdesk-service/internal/domain"

// RouteKind tags routes that carry a dynamic authorization policy. Routes
// with KindNone rely on static roles (or, absent those, default-deny plus
// the administrator bypass).
type RouteKind int

const (
	KindNone RouteKind = iota
	KindTicketCreate
	KindTicketGet
	KindTicketStatusUpdate
	KindClientTickets
	KindTechnicianTickets
)

// Rule is the per-route authorization metadata. Route registration declares
// one Rule per route; the guard consults it directly, there is no runtime
// reflection or URL substring matching.
type Rule struct {
	Public bool
	Roles  []domain.RoleName
	Kind   RouteKind
}

// Request is a fully-resolved authorization question: route metadata plus
// the identifiers parsed from the request path.
type Request struct {
	Rule

	// TicketID is set for KindTicketGet and KindTicketStatusUpdate.
	TicketID int64
	// ClientID is set for KindClientTickets.
	ClientID int64
	// TechnicianID is set for KindTechnicianTickets.
	TechnicianID int64
}

// Public marks a route that bypasses authorization entirely.
func Public() Rule {
	return Rule{Public: true}
}

// RequireRoles declares a static role allowlist for a route.
func RequireRoles(roles ...domain.RoleName) Rule {
	return Rule{Roles: roles}
}

// Dynamic declares a route governed by a dynamic ownership/assignment policy.
func Dynamic(kind RouteKind) Rule {
	return Rule{Kind: kind}
}

// Protected declares a route with neither static roles nor a dynamic rule;
// only administrators pass.
func Protected() Rule {
	return Rule{}
}
