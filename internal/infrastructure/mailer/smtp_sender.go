package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/labops-api/internal/application/alerting"
	"github.com/jhoicas/labops-api/pkg/config"
)

// Ensure SMTPSender implements alerting.NotificationSender.
var _ alerting.NotificationSender = (*SMTPSender)(nil)

// SMTPSender entrega notificaciones por correo vía SMTP. Cualquier error de
// conexión o entrega cuenta como fallo; el despachador decide el estado.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender construye el canal de correo con la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo de texto plano al destinatario.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
