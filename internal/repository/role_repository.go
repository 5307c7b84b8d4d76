package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nayelic98/backend-spring-01/internal/domain"
)

var ErrRoleNotFound = errors.New("role not found")

// RoleRepository defines the interface for role lookups. Roles are seeded by
// migration and never created at runtime.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.Role) (int64, error)
	List(ctx context.Context) ([]domain.Role, error)
}

type roleRepository struct {
	db *sql.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *sql.DB) RoleRepository {
	return &roleRepository{db: db}
}

// FindByName retrieves a role's ID by its enumerated name
func (r *roleRepository) FindByName(ctx context.Context, name domain.Role) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM roles WHERE name = $1`, string(name)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrRoleNotFound
		}
		return 0, fmt.Errorf("failed to find role: %w", err)
	}
	return id, nil
}

// List retrieves all role names
func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, domain.Role(name))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}
