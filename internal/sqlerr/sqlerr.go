// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the database driver and
// converts them into a structured Error (discriminated Code plus the
// offending table/column), which upper layers map to user-friendly
// responses without ever inspecting error text.
package sqlerr

import (
	"fmt"
)

// Code is a driver-independent classification of a database failure.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	StringDataTooLong   Code = "string_data_right_truncation"
	InvalidText         Code = "invalid_text_representation"
	ConnectionFailure   Code = "connection_failure"
	UndefinedTable      Code = "undefined_table"
)

// Severity mirrors the Postgres severity field.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// sqlStateCodes maps SQLSTATE values to Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStateCodes = map[string]Code{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22001": StringDataTooLong,
	"22P02": InvalidText,
	"08000": ConnectionFailure,
	"08003": ConnectionFailure,
	"08006": ConnectionFailure,
	"42P01": UndefinedTable,
}

// MapCode maps a SQLSTATE to a Code, defaulting to Other.
func MapCode(sqlState string) Code {
	if code, ok := sqlStateCodes[sqlState]; ok {
		return code
	}
	return Other
}

// MapSeverity maps the driver's severity text to Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a structured database failure.
//
// ColumnName is filled by the adapter even when the server only reports a
// constraint name (unique violations), so callers can tell which column
// collided.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Code, e.Message, e.DatabaseCode)
}

// Unwrap exposes the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// NewUniqueViolation builds the error the adapters return when a unique
// value is already taken. Used by non-Postgres stores as well.
func NewUniqueViolation(table, column string) *Error {
	return &Error{
		Code:       UniqueViolation,
		Severity:   SeverityError,
		Message:    fmt.Sprintf("duplicate key value violates unique constraint on %s.%s", table, column),
		TableName:  table,
		ColumnName: column,
	}
}
