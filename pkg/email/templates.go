package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

type Template string

const (
	TemplateOTP     Template = "otp"
	TemplateWelcome Template = "welcome"
)

// Rendered is the output of a template for a given data map.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

type templateSet struct {
	subject string
	html    *template.Template
	text    *texttemplate.Template
}

var templates = map[Template]templateSet{
	TemplateOTP: {
		subject: "Your login code",
		html: template.Must(template.New("otp.html").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Hello {{.Name}},</h2>
<p>Use the code below to sign in. It expires in {{.ExpiresIn}}.</p>
<p style="font-size:32px;font-weight:bold;letter-spacing:8px">{{.Code}}</p>
<p>If you did not request this code you can ignore this email.</p>
</div>`)),
		text: texttemplate.Must(texttemplate.New("otp.txt").Parse(
			"Hello {{.Name}},\n\nYour login code is {{.Code}}. It expires in {{.ExpiresIn}}.\n")),
	},
	TemplateWelcome: {
		subject: "Welcome to AstroSocial",
		html: template.Must(template.New("welcome.html").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Welcome, {{.Name}}!</h2>
<p>Your account has been created with {{.Email}}.</p>
<p>Explore classes, live streams and daily horoscopes from our astrologers.</p>
</div>`)),
		text: texttemplate.Must(texttemplate.New("welcome.txt").Parse(
			"Welcome, {{.Name}}!\n\nYour account has been created with {{.Email}}.\n")),
	},
}

// Render executes the named template against data.
func Render(name Template, data map[string]any) (Rendered, error) {
	set, ok := templates[name]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown email template %q", name)
	}

	var html bytes.Buffer
	if err := set.html.Execute(&html, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s html: %w", name, err)
	}
	var text bytes.Buffer
	if err := set.text.Execute(&text, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Rendered{Subject: set.subject, HTML: html.String(), Text: text.String()}, nil
}
