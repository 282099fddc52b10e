package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendNewLeadAlert le avisa a la inmobiliaria que entró un lead nuevo.
func (s *EmailSender) SendNewLeadAlert(to, tenantName, leadName, flowType, whatsapp string) error {
	data := NewLeadAlertData{
		TenantName: tenantName,
		LeadName:   leadName,
		FlowType:   flowType,
		Whatsapp:   whatsapp,
	}

	tmplPath := filepath.Join("templates", "new_lead.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("error leyendo template de mail: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("error procesando template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Nuevo lead %s: %s", flowType, leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error enviando alerta: %w", err)
	}

	return nil
}
