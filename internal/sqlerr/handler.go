package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/userapi/internal/errs"
)

// ConvertPgError converts a raw *pgconn.PgError into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	sqlErr := &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}

	// Postgres does not report a column for unique violations; recover it
	// from the constraint name.
	if sqlErr.Code == UniqueViolation && sqlErr.ColumnName == "" {
		sqlErr.ColumnName = extractColumnForUniqueViolation(sqlErr.TableName, sqlErr.ConstraintName)
	}

	return sqlErr
}

// Convert turns a Postgres error anywhere in err's chain into *Error.
// Any other error is returned unchanged.
func Convert(err error) error {
	if err == nil {
		return nil
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}
	return err
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes, e.g.
// users + UniqueViolation => USER_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "USERS" -> "USER".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		entityName = getEntityName(sqlErr.TableName, "")
		if field := humanizeText(sqlErr.ColumnName); field != "" {
			return fmt.Sprintf("A %s with this %s already exists", entityName, field)
		}
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: a "*_id" column wins, then the
// singularized table, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique
// constraint name. Supported conventions:
//
//  1. "unique_<table>_<column>"         unique_users_email -> email
//  2. "<table>_<column>_(key|ukey|pkey)" users_user_id_key -> user_id
//
// Column names may themselves contain underscores, so the table prefix is
// stripped when the table is known.
func extractColumnForUniqueViolation(tableName, constraintName string) string {
	if constraintName == "" {
		return ""
	}

	name := constraintName
	if strings.HasPrefix(name, "unique_") {
		name = strings.TrimPrefix(name, "unique_")
	} else {
		trimmed := false
		for _, suffix := range []string{"_ukey", "_pkey", "_key"} {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				trimmed = true
				break
			}
		}
		if !trimmed {
			return ""
		}
	}

	if tableName != "" && strings.HasPrefix(name, tableName+"_") {
		return strings.TrimPrefix(name, tableName+"_")
	}

	// Unknown table: assume a single-word table name.
	if idx := strings.Index(name, "_"); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return ""
}

// HandleError converts a low-level database error into an application error.
//
// It is the error handler's fallback for store errors that reached it
// without being mapped by a service; the services map the expected cases
// (not found, duplicate user id or email) themselves.
//
//   - *errs.HTTPError: returned unchanged
//   - *Error / pgconn.PgError: constraint violations become 400/409, the rest 500
//   - ErrNoRows: 404
//   - anything else: generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	if errors.As(Convert(err), &sqlErr) {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			return errs.NewConflictError(userMessage, true, &errorCode)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: userMessage,
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			// Unknown DB errors must not leak details to clients.
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
