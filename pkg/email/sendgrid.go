package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendgridSender delivers through the SendGrid v3 API.
type SendgridSender struct {
	client sendgridClient
	from   Address
}

func NewSendgridSender(apiKey string, from Address) *SendgridSender {
	return &SendgridSender{client: sendgrid.NewSendClient(apiKey), from: from}
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	rendered, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	from := mail.NewEmail(s.from.Name, s.from.Email)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, rendered.Subject, to, rendered.Text, rendered.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
