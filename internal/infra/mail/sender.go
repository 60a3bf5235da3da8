package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

var leadAlertTmpl = template.Must(template.New("leadAlert").Parse(
	`Hi Team,

A new lead has been registered:

Name: {{.Name}}
Phone: {{.Phone}}
Service: {{.ServiceType}}
Source: {{.Source}}

Please follow up soon.

Regards,
ECHT System
`))

type leadAlertData struct {
	Name        string
	Phone       string
	ServiceType string
	Source      string
}

func (s *EmailSender) SendLeadAlert(leadName, leadPhone, serviceType, source string) error {
	var body bytes.Buffer
	err := leadAlertTmpl.Execute(&body, leadAlertData{
		Name:        leadName,
		Phone:       leadPhone,
		ServiceType: serviceType,
		Source:      source,
	})
	if err != nil {
		return fmt.Errorf("failed to render lead alert: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New Lead Alert - %s", leadName))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
