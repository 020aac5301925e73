package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/types"
	"github.com/go-chi/chi/v5"
)

type sampleBody struct {
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"required,mobile"`
	Code   string `json:"otp" validate:"omitempty,otp"`
	Name   string `json:"fullName" validate:"required,min=2"`
}

func TestDecodeJSONBodyReportsAllViolations(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","mobile":"12","otp":"12ab"}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().([]types.FieldError)
	if !ok {
		t.Fatalf("expected field errors, got %T", typed.Details())
	}
	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	for _, want := range []string{"email", "mobile", "otp", "fullName"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected violation for %s, got %v", want, fields)
		}
	}
	if fields["mobile"] != "Mobile number must be exactly 10 digits" {
		t.Fatalf("unexpected mobile message %q", fields["mobile"])
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","mobile":"1234567890","fullName":"Ann","extra":1}`))
	var body sampleBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "Request body is required" {
		t.Fatalf("expected empty body error, got %v", err)
	}
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=2&status=false&role_id=7&bad=x", nil)
	page, err := ParseQueryInt(req, "page", 1, 1, 1000)
	if err != nil || page != 2 {
		t.Fatalf("unexpected page %d err %v", page, err)
	}
	status, err := ParseQueryBool(req, "status")
	if err != nil || status == nil || *status {
		t.Fatalf("unexpected status %v err %v", status, err)
	}
	roleID, err := ParseQueryID(req, "role_id")
	if err != nil || roleID == nil || *roleID != 7 {
		t.Fatalf("unexpected role id %v err %v", roleID, err)
	}
	if _, err := ParseQueryID(req, "bad"); err == nil {
		t.Fatalf("expected error for non numeric id")
	}
	if missing, err := ParseQueryBool(req, "missing"); err != nil || missing != nil {
		t.Fatalf("expected nil for missing bool")
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x/15", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "15")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	id, err := PathID(req, "id")
	if err != nil || id != 15 {
		t.Fatalf("unexpected id %d err %v", id, err)
	}

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "-3")
	if _, err := PathID(req, "id"); err == nil {
		t.Fatalf("expected error for negative id")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@X.com "); got != "user@x.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}
