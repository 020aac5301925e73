package email

import (
	"context"

	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// LogSender renders messages and writes a log line instead of delivering them.
// Codes and links are not logged.
type LogSender struct {
	logg *logger.Logger
}

func NewLogSender(logg *logger.Logger) *LogSender {
	return &LogSender{logg: logg}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	rendered, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"to":       msg.To,
			"template": string(msg.Template),
			"subject":  rendered.Subject,
		})
		s.logg.Info(ctx, "email.suppressed")
	}
	return nil
}
