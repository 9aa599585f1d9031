package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AccessRepository handles persistence for credential records.
type AccessRepository interface {
	Create(ctx context.Context, access *domain.Access) error
	// GetByEmail loads the access record with its user and role relations;
	// returns (nil, nil) when no record matches.
	GetByEmail(ctx context.Context, email string) (*domain.Access, error)
	GetByID(ctx context.Context, id int64) (*domain.Access, error)
	List(ctx context.Context) ([]domain.Access, error)
	Delete(ctx context.Context, id int64) error
}

type accessRepository struct {
	pool *pgxpool.Pool
}

// NewAccessRepository instantiates the repository.
func NewAccessRepository(pool *pgxpool.Pool) AccessRepository {
	return &accessRepository{pool: pool}
}

func (r *accessRepository) Create(ctx context.Context, access *domain.Access) error {
	const query = `
        INSERT INTO accesses (email, password_hash, user_id, role_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		access.Email,
		access.PasswordHash,
		access.UserID,
		access.RoleID,
	).Scan(&access.ID)
}

func (r *accessRepository) GetByEmail(ctx context.Context, email string) (*domain.Access, error) {
	const query = `
        SELECT a.id, a.email, a.password_hash, a.user_id, a.role_id,
               u.name, u.address, u.phone,
               r.name
        FROM accesses a
        INNER JOIN users u ON u.id = a.user_id
        INNER JOIN roles r ON r.id = a.role_id
        WHERE a.email=$1`

	var access domain.Access
	var user domain.User
	var role domain.Role
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&access.ID,
		&access.Email,
		&access.PasswordHash,
		&access.UserID,
		&access.RoleID,
		&user.Name,
		&user.Address,
		&user.Phone,
		&role.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.ID = access.UserID
	role.ID = access.RoleID
	access.User = &user
	access.Role = &role
	return &access, nil
}

func (r *accessRepository) GetByID(ctx context.Context, id int64) (*domain.Access, error) {
	const query = `SELECT id, email, password_hash, user_id, role_id FROM accesses WHERE id=$1`
	var access domain.Access
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&access.ID,
		&access.Email,
		&access.PasswordHash,
		&access.UserID,
		&access.RoleID,
	); err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *accessRepository) List(ctx context.Context) ([]domain.Access, error) {
	const query = `SELECT id, email, password_hash, user_id, role_id FROM accesses ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Access
	for rows.Next() {
		var access domain.Access
		if err := rows.Scan(
			&access.ID,
			&access.Email,
			&access.PasswordHash,
			&access.UserID,
			&access.RoleID,
		); err != nil {
			return nil, err
		}
		result = append(result, access)
	}
	return result, rows.Err()
}

func (r *accessRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accesses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
