package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

const (
	ProviderSendgrid = "sendgrid"
	ProviderSMTP     = "smtp"
	ProviderLog      = "log"
)

// Message is a templated email addressed to one recipient.
type Message struct {
	To       string
	Template Template
	Data     map[string]any
}

// Sender delivers templated messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the configured delivery provider.
func NewSender(cfg *config.Config, logg *logger.Logger) (Sender, error) {
	from := Address{Email: cfg.Email.From, Name: cfg.Email.FromName}
	switch strings.ToLower(strings.TrimSpace(cfg.Email.Provider)) {
	case ProviderSendgrid:
		if cfg.Sendgrid.APIKey == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		return NewSendgridSender(cfg.Sendgrid.APIKey, from), nil
	case ProviderSMTP:
		if cfg.SMTP.Host == "" {
			return nil, fmt.Errorf("smtp host is required")
		}
		return NewSMTPSender(cfg.SMTP, from), nil
	case ProviderLog, "":
		return NewLogSender(logg), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Email.Provider)
	}
}

// Address is a sender identity.
type Address struct {
	Email string
	Name  string
}
