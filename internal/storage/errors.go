package storage

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateKey reports whether err represents a unique-constraint
// violation on the code column, across all three dialects. Unlike the
// teacher's postgres.go (which did a naive strings.Contains on the error
// text), this checks MySQL's structured error number; sqlite and postgres
// errors are recognized by matching their error text.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique_violation") ||
		strings.Contains(msg, "sqlstate 23505")
}
