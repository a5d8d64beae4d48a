package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/userapi/internal/server"
)

// SystemRepository answers introspection queries about the database.
type SystemRepository struct {
	server *server.Server
}

func NewSystemRepository(s *server.Server) *SystemRepository {
	return &SystemRepository{server: s}
}

// ListTables returns the names of the tables in the current schema.
func (r *SystemRepository) ListTables(ctx context.Context) ([]string, error) {
	stmt := `
		SELECT
			table_name::text
		FROM
			information_schema.tables
		WHERE
			table_schema = current_schema()
			AND table_type = 'BASE TABLE'
		ORDER BY
			table_name
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list tables query: %w", err)
	}

	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect table names: %w", err)
	}

	return tables, nil
}
