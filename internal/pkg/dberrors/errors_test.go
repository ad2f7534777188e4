package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsDuplicateConstraintError(dup, "users_email_key") {
		t.Error("unique violation on the named constraint should match")
	}
	if IsDuplicateConstraintError(dup, "other_key") {
		t.Error("unique violation on a different constraint should not match")
	}
	if IsDuplicateConstraintError(errors.New("connection reset"), "users_email_key") {
		t.Error("non-postgres errors should not match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("error adding user course: %w",
		&pgconn.PgError{Code: "23505", ConstraintName: "user_courses_pkey"})

	if !IsUniqueViolation(wrapped) {
		t.Error("wrapped unique violation should match regardless of constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation should not match")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil error should not match")
	}
}
