package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/userapi/internal/model/user"
	"github.com/deppfellow/userapi/internal/server"
	"github.com/deppfellow/userapi/internal/sqlerr"
)

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

const userColumns = `user_id, name, email, phone_number, remaining_chats`

// CreateUser inserts u. remaining_chats takes the column default.
//
// A duplicate user_id or email surfaces as a *sqlerr.Error with
// Code UniqueViolation and ColumnName set to the violated column.
func (r *UserRepository) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	stmt := `
		INSERT INTO
			users (
				user_id,
				name,
				email,
				phone_number
			)
		VALUES
			(
				@user_id,
				@name,
				@email,
				@phone_number
			)
		RETURNING
	` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":      u.UserID,
		"name":         u.Name,
		"email":        u.Email,
		"phone_number": u.PhoneNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query for user_id=%s: %w", u.UserID, sqlerr.Convert(err))
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%s: %w", u.UserID, sqlerr.Convert(err))
	}

	return &created, nil
}

// GetUserByID returns the user or an error wrapping pgx.ErrNoRows.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*user.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE user_id = @user_id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user query for user_id=%s: %w", userID, sqlerr.Convert(err))
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%s: %w", userID, sqlerr.Convert(err))
	}

	return &u, nil
}

// ListUsers returns every user. The order is whatever the store yields.
func (r *UserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list users query: %w", sqlerr.Convert(err))
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:users: %w", sqlerr.Convert(err))
	}

	if users == nil {
		users = []user.User{}
	}
	return users, nil
}

// UpdateUser writes only the fields present in req.
//
// Returns an error wrapping pgx.ErrNoRows if the user no longer exists.
func (r *UserRepository) UpdateUser(ctx context.Context, req *user.UpdateUserRequest) (*user.User, error) {
	args := pgx.NamedArgs{
		"user_id": req.UserID,
	}
	var setClauses []string

	if req.Name != nil {
		setClauses = append(setClauses, "name = @name")
		args["name"] = *req.Name
	}
	if req.Email != nil {
		setClauses = append(setClauses, "email = @email")
		args["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		setClauses = append(setClauses, "phone_number = @phone_number")
		args["phone_number"] = *req.PhoneNumber
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields to update for user_id=%s", req.UserID)
	}

	stmt := `UPDATE users SET ` + strings.Join(setClauses, ", ") + `
		WHERE user_id = @user_id
		RETURNING ` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update user query for user_id=%s: %w", req.UserID, sqlerr.Convert(err))
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%s: %w", req.UserID, sqlerr.Convert(err))
	}

	return &updated, nil
}

// DeleteUser removes the user permanently and reports how many rows went.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	stmt := `DELETE FROM users WHERE user_id = @user_id`

	tag, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete user query for user_id=%s: %w", userID, sqlerr.Convert(err))
	}

	return tag.RowsAffected(), nil
}
