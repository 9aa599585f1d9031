package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newTicketFixture() (*memStore, events.Dispatcher, *TicketService) {
	store := newMemStore()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(&stubCreateTicketRepo{memTicketRepo{store: store}}, dispatcher, nil)
	return store, dispatcher, svc
}

// stubCreateTicketRepo assigns ids on create, the way the database would.
type stubCreateTicketRepo struct {
	memTicketRepo
}

var nextTicketID int64 = 1000

func (r *stubCreateTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	nextTicketID++
	ticket.ID = nextTicketID
	return r.memTicketRepo.Create(ctx, ticket)
}

func TestTicketCreate_Defaults(t *testing.T) {
	_, _, svc := newTicketFixture()

	ticket, err := svc.Create(context.Background(), TicketCreateInput{
		Title:       "printer on fire",
		Description: "third floor",
		CategoryID:  1,
		ClientID:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
}

func TestTicketCreate_RequiresTitleAndDescription(t *testing.T) {
	_, _, svc := newTicketFixture()

	_, err := svc.Create(context.Background(), TicketCreateInput{Title: "  ", Description: "x"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.Create(context.Background(), TicketCreateInput{Title: "x", Description: ""})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestTicketCreate_PublishesEvent(t *testing.T) {
	_, dispatcher, svc := newTicketFixture()

	var got []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		got = append(got, event)
		return nil
	})

	ticket, err := svc.Create(context.Background(), TicketCreateInput{
		Title:       "vpn down",
		Description: "remote office",
		CategoryID:  2,
		ClientID:    3,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ticket.ID, got[0].TicketID)
	assert.NotEmpty(t, got[0].ID)
}

func TestUpdateStatus_RejectsInvalidStatus(t *testing.T) {
	store, _, svc := newTicketFixture()
	addTicket(store, 100, domain.TicketStatusOpen)

	for _, status := range []domain.TicketStatus{"Resolved", "open", "Done", ""} {
		_, err := svc.UpdateStatus(context.Background(), 100, status)
		require.Error(t, err, "status %q", status)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, 400, domainErr.HTTPStatus)
		assert.Contains(t, domainErr.Message, "must be one of")
	}

	// Validation runs before the lookup: invalid status on a missing
	// ticket is still a 400.
	_, err := svc.UpdateStatus(context.Background(), 999, "Resolved")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateStatus_MissingTicket(t *testing.T) {
	_, _, svc := newTicketFixture()

	_, err := svc.UpdateStatus(context.Background(), 999, domain.TicketStatusClosed)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateStatus_PublishesTransition(t *testing.T) {
	store, dispatcher, svc := newTicketFixture()
	addTicket(store, 100, domain.TicketStatusOpen)

	var got []events.Event
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(_ context.Context, event events.Event) error {
		got = append(got, event)
		return nil
	})

	ticket, err := svc.UpdateStatus(context.Background(), 100, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, ticket.Status)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusInProgress, payload.NewStatus)
}

func TestTicketUpdate_PartialFields(t *testing.T) {
	store, _, svc := newTicketFixture()
	addTicket(store, 100, domain.TicketStatusOpen)
	store.tickets[100].Title = "old title"
	store.tickets[100].Priority = domain.TicketPriorityLow

	newTitle := "new title"
	ticket, err := svc.Update(context.Background(), 100, TicketUpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "new title", ticket.Title)
	assert.Equal(t, domain.TicketPriorityLow, ticket.Priority)
}

func TestTicketDelete_Missing(t *testing.T) {
	_, _, svc := newTicketFixture()

	err := svc.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
