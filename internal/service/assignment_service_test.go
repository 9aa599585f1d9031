package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// memStore is a shared in-memory backing for the fake repositories so the
// unresolved-ticket count reflects ticket status changes.
type memStore struct {
	tickets          map[int64]*domain.Ticket
	technicians      map[int64]*domain.Technician
	assignments      map[int64]*domain.Assignment
	nextAssignmentID int64

	// raceMode makes Exists lie so Create hits the unique constraint, the
	// way a concurrent identical insert would.
	raceMode bool
}

func newMemStore() *memStore {
	return &memStore{
		tickets:          make(map[int64]*domain.Ticket),
		technicians:      make(map[int64]*domain.Technician),
		assignments:      make(map[int64]*domain.Assignment),
		nextAssignmentID: 1,
	}
}

type memTicketRepo struct{ store *memStore }

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.store.tickets[ticket.ID] = ticket
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.store.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.tickets[ticket.ID] = ticket
	return nil
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ticket, nil
}

func (r *memTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.store.tickets))
	for _, t := range r.store.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTicketRepo) ListByClient(_ context.Context, clientID int64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.store.tickets {
		if t.ClientID == clientID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ListByTechnician(_ context.Context, technicianID int64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, a := range r.store.assignments {
		if a.TechnicianID == technicianID {
			if t, ok := r.store.tickets[a.TicketID]; ok {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func (r *memTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.tickets, id)
	return nil
}

type memTechnicianRepo struct{ store *memStore }

func (r *memTechnicianRepo) Create(_ context.Context, technician *domain.Technician) error {
	r.store.technicians[technician.ID] = technician
	return nil
}

func (r *memTechnicianRepo) Update(_ context.Context, technician *domain.Technician) error {
	r.store.technicians[technician.ID] = technician
	return nil
}

func (r *memTechnicianRepo) GetByID(_ context.Context, id int64) (*domain.Technician, error) {
	technician, ok := r.store.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return technician, nil
}

func (r *memTechnicianRepo) GetByUserID(_ context.Context, userID int64) (*domain.Technician, error) {
	for _, technician := range r.store.technicians {
		if technician.UserID == userID {
			return technician, nil
		}
	}
	return nil, nil
}

func (r *memTechnicianRepo) List(_ context.Context) ([]domain.Technician, error) {
	out := make([]domain.Technician, 0, len(r.store.technicians))
	for _, technician := range r.store.technicians {
		out = append(out, *technician)
	}
	return out, nil
}

func (r *memTechnicianRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.technicians, id)
	return nil
}

type memAssignmentRepo struct{ store *memStore }

func (r *memAssignmentRepo) Create(_ context.Context, assignment *domain.Assignment) error {
	for _, existing := range r.store.assignments {
		if existing.TechnicianID == assignment.TechnicianID && existing.TicketID == assignment.TicketID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "assignments_technician_ticket_key"}
		}
	}
	assignment.ID = r.store.nextAssignmentID
	r.store.nextAssignmentID++
	r.store.assignments[assignment.ID] = assignment
	return nil
}

func (r *memAssignmentRepo) GetByID(_ context.Context, id int64) (*domain.Assignment, error) {
	assignment, ok := r.store.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return assignment, nil
}

func (r *memAssignmentRepo) List(_ context.Context) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(r.store.assignments))
	for _, assignment := range r.store.assignments {
		out = append(out, *assignment)
	}
	return out, nil
}

func (r *memAssignmentRepo) ListByTechnician(_ context.Context, technicianID int64) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, assignment := range r.store.assignments {
		if assignment.TechnicianID == technicianID {
			out = append(out, *assignment)
		}
	}
	return out, nil
}

func (r *memAssignmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.assignments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.assignments, id)
	return nil
}

func (r *memAssignmentRepo) Exists(_ context.Context, technicianID, ticketID int64) (bool, error) {
	if r.store.raceMode {
		return false, nil
	}
	for _, assignment := range r.store.assignments {
		if assignment.TechnicianID == technicianID && assignment.TicketID == ticketID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAssignmentRepo) CountUnresolvedByTechnician(_ context.Context, technicianID int64) (int, error) {
	count := 0
	for _, assignment := range r.store.assignments {
		if assignment.TechnicianID != technicianID {
			continue
		}
		if ticket, ok := r.store.tickets[assignment.TicketID]; ok && ticket.Status.Unresolved() {
			count++
		}
	}
	return count, nil
}

func newAssignmentFixture() (*memStore, *AssignmentService) {
	store := newMemStore()
	svc := NewAssignmentService(AssignmentDependencies{
		AssignmentRepo: &memAssignmentRepo{store: store},
		TechnicianRepo: &memTechnicianRepo{store: store},
		TicketRepo:     &memTicketRepo{store: store},
		Dispatcher:     events.NewInMemoryDispatcher(),
	}, nil)
	return store, svc
}

func addTicket(store *memStore, id int64, status domain.TicketStatus) {
	store.tickets[id] = &domain.Ticket{ID: id, Status: status, ClientID: 1}
}

func TestAssign_Success(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	addTicket(store, 100, domain.TicketStatusOpen)

	assignment, err := svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.NotZero(t, assignment.ID)
	assert.Equal(t, int64(1), assignment.TechnicianID)
	assert.Equal(t, int64(100), assignment.TicketID)
}

func TestAssign_DuplicatePairConflict(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	addTicket(store, 100, domain.TicketStatusOpen)

	_, err := svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), 1, 100)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "already assigned")
}

func TestAssign_DuplicateRaceAtInsert(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	addTicket(store, 100, domain.TicketStatusOpen)

	_, err := svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)

	// The advisory pre-check misses; the unique constraint still reports
	// the same conflict.
	store.raceMode = true
	_, err = svc.Assign(context.Background(), 1, 100)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "already assigned")
}

func TestAssign_MissingTechnician(t *testing.T) {
	store, svc := newAssignmentFixture()
	addTicket(store, 100, domain.TicketStatusOpen)

	_, err := svc.Assign(context.Background(), 7, 100)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "technician")
}

func TestAssign_MissingTicket(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}

	_, err := svc.Assign(context.Background(), 1, 999)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAssign_WorkloadLimit(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	for i := int64(1); i <= 6; i++ {
		addTicket(store, i, domain.TicketStatusOpen)
	}

	for i := int64(1); i <= 5; i++ {
		_, err := svc.Assign(context.Background(), 1, i)
		require.NoError(t, err)
	}

	_, err := svc.Assign(context.Background(), 1, 6)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "limit is 5")
	assert.Equal(t, 5, domainErr.Details["unresolved_count"])
}

func TestAssign_ResolvedTicketsFreeCapacity(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	for i := int64(1); i <= 6; i++ {
		addTicket(store, i, domain.TicketStatusOpen)
	}
	for i := int64(1); i <= 5; i++ {
		_, err := svc.Assign(context.Background(), 1, i)
		require.NoError(t, err)
	}

	// Closing one of the held tickets drops the unresolved count below
	// the limit; the next assignment goes through.
	store.tickets[3].Status = domain.TicketStatusClosed

	assignment, err := svc.Assign(context.Background(), 1, 6)
	require.NoError(t, err)
	assert.NotZero(t, assignment.ID)
}

func TestUnassign_ThenReassignGetsNewID(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	addTicket(store, 100, domain.TicketStatusOpen)

	first, err := svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)

	require.NoError(t, svc.Unassign(context.Background(), first.ID))

	second, err := svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUnassign_MissingAssignment(t *testing.T) {
	_, svc := newAssignmentFixture()

	err := svc.Unassign(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestIsTechnicianAssignedToTicket(t *testing.T) {
	store, svc := newAssignmentFixture()
	store.technicians[1] = &domain.Technician{ID: 1, UserID: 20}
	addTicket(store, 100, domain.TicketStatusOpen)

	assigned, err := svc.IsTechnicianAssignedToTicket(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.False(t, assigned)

	_, err = svc.Assign(context.Background(), 1, 100)
	require.NoError(t, err)

	assigned, err = svc.IsTechnicianAssignedToTicket(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.True(t, assigned)
}
