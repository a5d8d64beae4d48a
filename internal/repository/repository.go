// Package repository handles all interactions with the database.
//
// It holds the SQL statements and maps rows to models. Driver errors are
// passed through sqlerr.Convert so callers can classify them without
// inspecting driver types.
package repository
