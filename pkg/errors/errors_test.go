package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestCodeStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:    http.StatusBadRequest,
		CodeUnauthorized:  http.StatusUnauthorized,
		CodeForbidden:     http.StatusForbidden,
		CodeNotFound:      http.StatusNotFound,
		CodeConflict:      http.StatusConflict,
		CodeStateConflict: http.StatusUnprocessableEntity,
		CodeIdempotency:   http.StatusConflict,
		CodeRateLimit:     http.StatusTooManyRequests,
		CodeInternal:      http.StatusInternalServerError,
		CodeDependency:    http.StatusServiceUnavailable,
		"SOMETHING_ELSE":  http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := code.Status(); got != want {
			t.Fatalf("%s: expected %d got %d", code, want, got)
		}
	}
}

func TestClientMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "exposed code", err: New(CodeNotFound, "Wallet not found"), want: "Wallet not found"},
		{name: "hidden code", err: Wrap(CodeInternal, stdErrors.New("db down"), "lookup wallet"), want: "Internal server error"},
		{name: "public override", err: New(CodeInternal, "Failed to send OTP email").Public(), want: "Failed to send OTP email"},
		{name: "empty exposed", err: New(CodeRateLimit, ""), want: "Too many requests, please try again later"},
		{name: "idempotency hidden", err: New(CodeIdempotency, "key k1 reused"), want: "Idempotency key reused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ClientMessage(); got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
		})
	}
}

func TestClientDetailsRespectCode(t *testing.T) {
	fields := []string{"email"}
	if New(CodeValidation, "bad").WithDetails(fields).ClientDetails() == nil {
		t.Fatalf("validation details should reach the client")
	}
	withheld := New(CodeInternal, "bad").WithDetails(fields)
	if withheld.ClientDetails() != nil {
		t.Fatalf("internal details must be withheld")
	}
	if withheld.Details() == nil {
		t.Fatalf("details should still be kept on the error")
	}
}

func TestWrapAndFrom(t *testing.T) {
	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "insert like")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not keep cause")
	}
	if wrapped.Error() != "CONFLICT: insert like: boom" {
		t.Fatalf("unexpected text %q", wrapped.Error())
	}
	if got := Newf(CodeNotFound, "%s not found", "Plan").Message(); got != "Plan not found" {
		t.Fatalf("unexpected message %q", got)
	}

	if From(wrapped) != wrapped {
		t.Fatalf("From should return typed errors unchanged")
	}
	untyped := From(cause)
	if untyped.Code() != CodeInternal || !stdErrors.Is(untyped, cause) {
		t.Fatalf("From should wrap untyped errors as internal, got %v", untyped)
	}
	if From(nil).Code() != CodeInternal {
		t.Fatalf("From(nil) should still yield an internal error")
	}
}

func TestAsAndIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeForbidden, "no entry"))
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeForbidden) || IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode mismatch")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpReadsPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_users_email", TableName: "users", Message: "duplicate key"}
	d := Dump(Wrap(CodeConflict, fmt.Errorf("create user: %w", pgErr), "Email already registered"))

	if d.Code != CodeConflict || d.PGCode != "23505" || d.PGConstraint != "ux_users_email" {
		t.Fatalf("unexpected dump %+v", d)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three links in chain, got %v", d.Chain)
	}

	fields := d.Fields()
	if fields["pg_table"] != "users" {
		t.Fatalf("expected pg_table field, got %v", fields)
	}
	if _, ok := fields["pg_column"]; ok {
		t.Fatalf("empty pg fields should be skipped: %v", fields)
	}
	if _, ok := Dump(stdErrors.New("plain")).Fields()["pg_code"]; ok {
		t.Fatalf("plain errors should not carry pg fields")
	}
}
