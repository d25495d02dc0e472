package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<p>Hello{{if .Name}}, {{.Name}}{{end}}!</p>
<p>Your HireHub verification code is <b>{{.Code}}</b>.</p>
<p>The code expires in {{.Minutes}} minutes.</p>`))

// RenderOTP собирает письмо с кодом подтверждения
func RenderOTP(name, code string, ttl time.Duration) (*Email, error) {
	data := TemplateData{
		"Name":    name,
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	}

	var html strings.Builder
	if err := otpTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return &Email{
		Subject:  "Your HireHub verification code",
		Body:     fmt.Sprintf("Your HireHub verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes())),
		HTMLBody: html.String(),
	}, nil
}
