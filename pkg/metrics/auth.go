package metrics

import "github.com/prometheus/client_golang/prometheus"

// AuthMetrics counts login and OTP outcomes.
type AuthMetrics struct {
	logins   *prometheus.CounterVec
	otpIssue *prometheus.CounterVec
	otpCheck *prometheus.CounterVec
}

func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Login attempts by method and outcome.",
	}, []string{"method", "outcome"})
	otpIssue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "OTP issue requests by outcome.",
	}, []string{"outcome"})
	otpCheck := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "OTP verification attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(logins, otpIssue, otpCheck)
	return &AuthMetrics{logins: logins, otpIssue: otpIssue, otpCheck: otpCheck}
}

func (a *AuthMetrics) Login(method, outcome string) {
	if a == nil || a.logins == nil {
		return
	}
	a.logins.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Inc()
}

func (a *AuthMetrics) OTPIssued(outcome string) {
	if a == nil || a.otpIssue == nil {
		return
	}
	a.otpIssue.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (a *AuthMetrics) OTPVerified(outcome string) {
	if a == nil || a.otpCheck == nil {
		return
	}
	a.otpCheck.WithLabelValues(normalizeLabel(outcome)).Inc()
}
