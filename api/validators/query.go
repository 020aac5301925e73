package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/types"
	"github.com/go-chi/chi/v5"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Query parameter must be numeric").
			WithDetails([]types.FieldError{{Field: key, Message: key + " must be a number"}})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Query parameter out of range").
			WithDetails([]types.FieldError{{Field: key, Message: key + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}})
	}
	return value, nil
}

// ParseQueryBool returns nil when the parameter is absent.
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Query parameter must be a boolean").
			WithDetails([]types.FieldError{{Field: key, Message: key + " must be true or false"}})
	}
	return &value, nil
}

// ParseQueryID parses an optional positive integer reference from the query string.
func ParseQueryID(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := parseID(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid query parameter").
			WithDetails([]types.FieldError{{Field: key, Message: key + " must be a positive integer"}})
	}
	return &value, nil
}

// PathID reads a positive integer chi URL parameter.
func PathID(r *http.Request, key string) (int64, error) {
	value, err := parseID(chi.URLParam(r, key))
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid ID").
			WithDetails([]types.FieldError{{Field: key, Message: key + " must be a positive integer"}})
	}
	return value, nil
}

func parseID(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
