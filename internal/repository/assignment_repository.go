package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AssignmentRepository encapsulates technician-ticket binding persistence.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	ListByTechnician(ctx context.Context, technicianID int64) ([]domain.Assignment, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, technicianID, ticketID int64) (bool, error)
	CountUnresolvedByTechnician(ctx context.Context, technicianID int64) (int, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (technician_id, ticket_id)
        VALUES ($1,$2)
        RETURNING id, assigned_at`
	return r.pool.QueryRow(ctx, query,
		assignment.TechnicianID,
		assignment.TicketID,
	).Scan(&assignment.ID, &assignment.AssignedAt)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	const query = `SELECT id, technician_id, ticket_id, assigned_at FROM assignments WHERE id=$1`
	var assignment domain.Assignment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.TechnicianID,
		&assignment.TicketID,
		&assignment.AssignedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]domain.Assignment, error) {
	const query = `SELECT id, technician_id, ticket_id, assigned_at FROM assignments ORDER BY assigned_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *assignmentRepository) ListByTechnician(ctx context.Context, technicianID int64) ([]domain.Assignment, error) {
	const query = `
        SELECT id, technician_id, ticket_id, assigned_at
        FROM assignments WHERE technician_id=$1
        ORDER BY assigned_at DESC`
	rows, err := r.pool.Query(ctx, query, technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) Exists(ctx context.Context, technicianID, ticketID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM assignments WHERE technician_id=$1 AND ticket_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, technicianID, ticketID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountUnresolvedByTechnician counts live assignments whose linked ticket
// is still Open or In Progress.
func (r *assignmentRepository) CountUnresolvedByTechnician(ctx context.Context, technicianID int64) (int, error) {
	const query = `
        SELECT COUNT(*)
        FROM assignments a
        INNER JOIN tickets t ON t.id = a.ticket_id
        WHERE a.technician_id=$1 AND t.status = ANY($2)`
	statuses := []string{string(domain.TicketStatusOpen), string(domain.TicketStatusInProgress)}
	var count int
	if err := r.pool.QueryRow(ctx, query, technicianID, statuses).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanAssignments(rows pgx.Rows) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.TechnicianID,
			&assignment.TicketID,
			&assignment.AssignedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}
