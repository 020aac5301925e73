package responses

import (
	"context"
	"encoding/json"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
	"github.com/angelmondragon/astrosocial-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, message string, data any) {
	WriteSuccessStatus(w, http.StatusOK, message, data)
}

func WriteCreated(w http.ResponseWriter, message string, data any) {
	WriteSuccessStatus(w, http.StatusCreated, message, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Message: message, Data: data})
}

// WritePaginated writes a list payload with its pagination block.
func WritePaginated(w http.ResponseWriter, message string, data any, meta pagination.Meta) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &meta,
	})
}

// WriteError renders err as the flat error envelope and logs it with its dump.
// Untyped errors become 500s with a generic message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.From(err)
	status := typed.Code().Status()

	if logg != nil {
		fields := pkgerrors.Dump(typed).Fields()
		fields["status"] = status
		ctx = logg.WithFields(ctx, fields)
		if status >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", typed)
		} else {
			logg.Warn(ctx, "request.error")
		}
	}

	writeJSON(w, status, types.ErrorEnvelope{
		Success: false,
		Message: typed.ClientMessage(),
		Code:    string(typed.Code()),
		Errors:  typed.ClientDetails(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already out; only the process log can record this
		zlog.Error().Err(err).Int("status", status).Msg("response.encode_failed")
	}
}
