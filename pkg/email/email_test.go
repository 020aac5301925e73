package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

func TestRenderOTP(t *testing.T) {
	out, err := Render(TemplateOTP, map[string]any{"Name": "Luna", "Code": "123456", "ExpiresIn": "10 minutes"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.HTML, "123456") || !strings.Contains(out.Text, "123456") {
		t.Fatalf("code missing from rendered output: %+v", out)
	}
	if out.Subject == "" {
		t.Fatal("expected subject")
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	out, err := Render(TemplateWelcome, map[string]any{"Name": "<script>", "Email": "a@b.co"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out.HTML, "<script>") {
		t.Fatalf("expected html escaping, got %s", out.HTML)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("nope", nil); err == nil {
		t.Fatal("expected unknown template error")
	}
}

type fakeSendgrid struct {
	status int
	err    error
	sent   *mail.SGMailV3
}

func (f *fakeSendgrid) SendWithContext(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.sent = m
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendgridSender(t *testing.T) {
	fake := &fakeSendgrid{status: 202}
	sender := &SendgridSender{client: fake, from: Address{Email: "no-reply@astro.app", Name: "Astro"}}

	err := sender.Send(context.Background(), Message{To: "luna@example.com", Template: TemplateOTP, Data: map[string]any{"Code": "000111"}})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if fake.sent == nil || fake.sent.From.Address != "no-reply@astro.app" {
		t.Fatalf("unexpected message %+v", fake.sent)
	}

	fake.status = 401
	if err := sender.Send(context.Background(), Message{To: "luna@example.com", Template: TemplateOTP}); err == nil {
		t.Fatal("expected error on 4xx status")
	}

	fake.err = errors.New("network")
	if err := sender.Send(context.Background(), Message{To: "luna@example.com", Template: TemplateOTP}); err == nil {
		t.Fatal("expected transport error")
	}
}

type fakeDialer struct {
	err  error
	sent []*gomail.Message
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPSender(t *testing.T) {
	dialer := &fakeDialer{}
	sender := &SMTPSender{dialer: dialer, from: Address{Email: "no-reply@astro.app"}}

	if err := sender.Send(context.Background(), Message{To: "sol@example.com", Template: TemplateWelcome, Data: map[string]any{"Name": "Sol"}}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(dialer.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(dialer.sent))
	}
	if got := dialer.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "sol@example.com" {
		t.Fatalf("unexpected To header %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sender.Send(ctx, Message{To: "sol@example.com", Template: TemplateWelcome}); err == nil {
		t.Fatal("expected canceled context error")
	}

	dialer.err = errors.New("relay down")
	if err := sender.Send(context.Background(), Message{To: "sol@example.com", Template: TemplateWelcome}); err == nil {
		t.Fatal("expected relay error")
	}
}

func TestLogSenderDoesNotLogCode(t *testing.T) {
	buf := &bytes.Buffer{}
	sender := NewLogSender(logger.New(logger.Options{ServiceName: "test", Output: buf}))
	if err := sender.Send(context.Background(), Message{To: "x@y.z", Template: TemplateOTP, Data: map[string]any{"Code": "987654"}}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if strings.Contains(buf.String(), "987654") {
		t.Fatalf("code leaked into logs: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "email.suppressed") {
		t.Fatalf("expected log entry, got %s", buf.String())
	}
}

func TestNewSenderSelectsProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.Provider = "sendgrid"
	if _, err := NewSender(cfg, nil); err == nil {
		t.Fatal("expected missing api key error")
	}
	cfg.Sendgrid.APIKey = "SG.key"
	if s, err := NewSender(cfg, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if _, ok := s.(*SendgridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", s)
	}

	cfg.Email.Provider = "smtp"
	cfg.SMTP.Host = "smtp.example.com"
	if s, err := NewSender(cfg, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if _, ok := s.(*SMTPSender); !ok {
		t.Fatalf("expected smtp sender, got %T", s)
	}

	cfg.Email.Provider = "pigeon"
	if _, err := NewSender(cfg, nil); err == nil {
		t.Fatal("expected unsupported provider error")
	}
}
