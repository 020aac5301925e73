package otp

import "time"

// SendRequest asks for a login code.
type SendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyRequest exchanges a code for tokens.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,otp"`
}

// UpdateRequest is the admin patch for an issued code. The code itself is immutable.
type UpdateRequest struct {
	IsUsed    *bool      `json:"is_used,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Status    *bool      `json:"status,omitempty"`
}

func (r UpdateRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.IsUsed != nil {
		changes["is_used"] = *r.IsUsed
	}
	if r.ExpiresAt != nil {
		changes["expires_at"] = r.ExpiresAt.UTC()
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}
