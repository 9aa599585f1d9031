package policy

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type fakeTicketSource struct {
	tickets map[int64]*domain.Ticket
}

func (f *fakeTicketSource) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ticket, nil
}

type fakeClientSource struct {
	clients map[int64]*domain.Client
}

func (f *fakeClientSource) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return client, nil
}

type fakeTechnicianSource struct {
	byUserID map[int64]*domain.Technician
}

func (f *fakeTechnicianSource) GetByUserID(_ context.Context, userID int64) (*domain.Technician, error) {
	return f.byUserID[userID], nil
}

type fakeAssignmentSource struct {
	assigned map[[2]int64]bool
}

func (f *fakeAssignmentSource) IsTechnicianAssignedToTicket(_ context.Context, technicianID, ticketID int64) (bool, error) {
	return f.assigned[[2]int64{technicianID, ticketID}], nil
}

// newTestEngine builds an engine over a small fixed world:
//
//	user 10 -> client 1, owns ticket 100
//	user 20 -> technician 2, assigned to ticket 100
//	user 30 -> client 3 (owns nothing)
//	user 40 -> technician 4 (assigned to nothing)
//	ticket 200 owned by client 3, unassigned
func newTestEngine() *Engine {
	tickets := &fakeTicketSource{tickets: map[int64]*domain.Ticket{
		100: {ID: 100, ClientID: 1, Status: domain.TicketStatusOpen},
		200: {ID: 200, ClientID: 3, Status: domain.TicketStatusOpen},
	}}
	clients := &fakeClientSource{clients: map[int64]*domain.Client{
		1: {ID: 1, UserID: 10},
		3: {ID: 3, UserID: 30},
	}}
	technicians := &fakeTechnicianSource{byUserID: map[int64]*domain.Technician{
		20: {ID: 2, UserID: 20},
		40: {ID: 4, UserID: 40},
	}}
	assignments := &fakeAssignmentSource{assigned: map[[2]int64]bool{
		{2, 100}: true,
	}}
	return NewEngine(Dependencies{
		Tickets:     tickets,
		Clients:     clients,
		Technicians: technicians,
		Assignments: assignments,
	}, nil)
}

func clientPrincipal(userID, clientID int64) *auth.Principal {
	return &auth.Principal{UserID: userID, Role: domain.RoleClient, ClientID: &clientID}
}

func technicianPrincipal(userID int64) *auth.Principal {
	return &auth.Principal{UserID: userID, Role: domain.RoleTechnician}
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{UserID: 1, Role: domain.RoleAdministrator}
}

func TestAuthorize_PublicBypassesEverything(t *testing.T) {
	engine := newTestEngine()

	assert.NoError(t, engine.Authorize(context.Background(), nil, Request{Rule: Public()}))
	assert.NoError(t, engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Public()}))
}

func TestAuthorize_MissingPrincipalIsForbidden(t *testing.T) {
	engine := newTestEngine()

	err := engine.Authorize(context.Background(), nil, Request{Rule: Protected()})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_StaticRolesShortCircuit(t *testing.T) {
	engine := newTestEngine()
	rule := RequireRoles(domain.RoleAdministrator, domain.RoleTechnician)

	assert.NoError(t, engine.Authorize(context.Background(), adminPrincipal(), Request{Rule: rule}))
	assert.NoError(t, engine.Authorize(context.Background(), technicianPrincipal(20), Request{Rule: rule}))

	err := engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: rule})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_RoleMatchIsCaseSensitive(t *testing.T) {
	engine := newTestEngine()
	principal := &auth.Principal{UserID: 10, Role: domain.RoleName("administrator")}

	err := engine.Authorize(context.Background(), principal, Request{Rule: RequireRoles(domain.RoleAdministrator)})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_AdministratorBypassesDynamicChecks(t *testing.T) {
	engine := newTestEngine()

	for _, req := range []Request{
		{Rule: Dynamic(KindTicketCreate)},
		{Rule: Dynamic(KindTicketGet), TicketID: 100},
		{Rule: Dynamic(KindTicketStatusUpdate), TicketID: 100},
		{Rule: Dynamic(KindClientTickets), ClientID: 1},
		{Rule: Dynamic(KindTechnicianTickets), TechnicianID: 2},
		{Rule: Protected()},
	} {
		assert.NoError(t, engine.Authorize(context.Background(), adminPrincipal(), req))
	}
}

func TestAuthorize_TicketCreateClientsOnly(t *testing.T) {
	engine := newTestEngine()
	req := Request{Rule: Dynamic(KindTicketCreate)}

	assert.NoError(t, engine.Authorize(context.Background(), clientPrincipal(10, 1), req))

	err := engine.Authorize(context.Background(), technicianPrincipal(20), req)
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Message, "only clients")
}

func TestAuthorize_TicketGetOwnership(t *testing.T) {
	engine := newTestEngine()

	// Owner sees own ticket.
	assert.NoError(t, engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindTicketGet), TicketID: 100}))

	// Another client does not.
	err := engine.Authorize(context.Background(), clientPrincipal(30, 3), Request{Rule: Dynamic(KindTicketGet), TicketID: 100})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_TicketGetAssignedTechnician(t *testing.T) {
	engine := newTestEngine()

	assert.NoError(t, engine.Authorize(context.Background(), technicianPrincipal(20), Request{Rule: Dynamic(KindTicketGet), TicketID: 100}))

	err := engine.Authorize(context.Background(), technicianPrincipal(40), Request{Rule: Dynamic(KindTicketGet), TicketID: 100})
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Message, "not assigned")
}

func TestAuthorize_TicketGetMissingTicketIsNotFound(t *testing.T) {
	engine := newTestEngine()

	err := engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindTicketGet), TicketID: 999})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_StatusUpdateRequiresAssignment(t *testing.T) {
	engine := newTestEngine()

	assert.NoError(t, engine.Authorize(context.Background(), technicianPrincipal(20), Request{Rule: Dynamic(KindTicketStatusUpdate), TicketID: 100}))

	// Unassigned technician.
	err := engine.Authorize(context.Background(), technicianPrincipal(40), Request{Rule: Dynamic(KindTicketStatusUpdate), TicketID: 100})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	// Clients never update status, even on their own ticket.
	err = engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindTicketStatusUpdate), TicketID: 100})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_StatusUpdateNoTechnicianProfile(t *testing.T) {
	engine := newTestEngine()
	principal := &auth.Principal{UserID: 99, Role: domain.RoleTechnician}

	err := engine.Authorize(context.Background(), principal, Request{Rule: Dynamic(KindTicketStatusUpdate), TicketID: 100})
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Message, "technician profile")
}

func TestAuthorize_ClientTicketsRequiresMatch(t *testing.T) {
	engine := newTestEngine()

	assert.NoError(t, engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindClientTickets), ClientID: 1}))

	err := engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindClientTickets), ClientID: 3})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	// Missing claim denies too.
	principal := &auth.Principal{UserID: 10, Role: domain.RoleClient}
	err = engine.Authorize(context.Background(), principal, Request{Rule: Dynamic(KindClientTickets), ClientID: 1})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorize_TechnicianTicketsRequiresMatch(t *testing.T) {
	engine := newTestEngine()

	assert.NoError(t, engine.Authorize(context.Background(), technicianPrincipal(20), Request{Rule: Dynamic(KindTechnicianTickets), TechnicianID: 2}))

	err := engine.Authorize(context.Background(), technicianPrincipal(20), Request{Rule: Dynamic(KindTechnicianTickets), TechnicianID: 4})
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Message, "their own")
}

func TestAuthorize_DefaultDeny(t *testing.T) {
	engine := newTestEngine()

	// A protected route with no static roles and no dynamic rule admits
	// administrators only.
	for _, principal := range []*auth.Principal{
		clientPrincipal(10, 1),
		technicianPrincipal(20),
	} {
		err := engine.Authorize(context.Background(), principal, Request{Rule: Protected()})
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
	}

	// Same for a dynamic rule that grants nothing to the caller's role.
	err := engine.Authorize(context.Background(), clientPrincipal(10, 1), Request{Rule: Dynamic(KindTechnicianTickets), TechnicianID: 2})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}
