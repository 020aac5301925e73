package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/api/responses"
	pkgAuth "github.com/angelmondragon/astrosocial-backend/pkg/auth"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid or expired token"
)

// Auth requires an access token in the Authorization header. The "Bearer "
// scheme is optional. Refresh tokens are rejected. On success the user and role
// ids are put on the context and the request logger.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, msgNoToken))
				return
			}
			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err == nil && claims.UserID <= 0 {
				err = pkgAuth.ErrMissingSubject
			}
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msgInvalidToken))
				return
			}

			ctx = WithRoleID(WithUserID(ctx, claims.UserID), claims.RoleID)
			if logg != nil {
				ctx = logg.WithCaller(ctx, claims.UserID, claims.RoleID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}
