package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// maxThrottledBody bounds how much of the body is buffered to find the email.
const maxThrottledBody = 64 << 10

// CounterStore keeps fixed-window counters. pkg/redis.Client satisfies it.
type CounterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	RateLimitKey(parts ...string) string
}

// ThrottlePolicy counts attempts per client IP and per submitted email.
type ThrottlePolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

// LoginThrottle covers password login.
func LoginThrottle(cfg config.AuthRateLimitConfig) ThrottlePolicy {
	return ThrottlePolicy{Name: "login", Window: cfg.LoginWindow, IPLimit: cfg.LoginIPLimit, EmailLimit: cfg.LoginEmailLimit}
}

// OTPThrottle covers code issue and verification.
func OTPThrottle(cfg config.AuthRateLimitConfig) ThrottlePolicy {
	return ThrottlePolicy{Name: "otp", Window: cfg.OTPWindow, IPLimit: cfg.OTPIPLimit, EmailLimit: cfg.OTPEmailLimit}
}

func (p ThrottlePolicy) active() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

func (p ThrottlePolicy) name() string {
	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" {
		return name
	}
	return "auth"
}

// Throttle rejects requests over the policy limits with 429 and a Retry-After
// of one window. A nil store disables throttling.
func Throttle(policy ThrottlePolicy, store CounterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.active() || store == nil {
			return next
		}
		t := throttle{policy: policy, store: store, logg: logg}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if ip := clientIP(r); policy.IPLimit > 0 && ip != "" {
				if !t.allow(ctx, w, "ip", ip, policy.IPLimit, logger.Fields{"ip": ip}) {
					return
				}
			}

			if policy.EmailLimit > 0 && r.Body != nil {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxThrottledBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Unable to read request body"))
					return
				}
				// the handler still sees the whole body when it ran past the buffer
				r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(body), r.Body), Closer: r.Body}

				// only a digest of the address reaches redis and the logs
				if email := emailFrom(body); email != "" {
					digest := sha256Hex(email)
					if !t.allow(ctx, w, "email", digest, policy.EmailLimit, logger.Fields{"email_hash": digest}) {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

type replayBody struct {
	io.Reader
	io.Closer
}

type throttle struct {
	policy ThrottlePolicy
	store  CounterStore
	logg   *logger.Logger
}

// allow counts one attempt for scope/value and writes the rejection itself when it returns false.
func (t throttle) allow(ctx context.Context, w http.ResponseWriter, scope, value string, limit int, fields logger.Fields) bool {
	key := t.store.RateLimitKey(t.policy.name(), scope, value)
	count, err := t.store.IncrWithTTL(ctx, key, t.policy.Window)
	if err != nil {
		responses.WriteError(ctx, t.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting unavailable"))
		return false
	}
	if count <= int64(limit) {
		return true
	}

	retryAfter := int(math.Ceil(t.policy.Window.Seconds()))
	if t.logg != nil {
		fields["scope"] = scope
		fields["policy"] = t.policy.name()
		fields["attempts"] = count
		fields["limit"] = limit
		fields["window_seconds"] = retryAfter
		t.logg.Warn(t.logg.WithFields(ctx, fields), "auth.throttled")
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many attempts, please try again later"))
	return false
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func emailFrom(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return validators.NormalizeEmail(body.Email)
}

func sha256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
