package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer sends transactional mail. The auth service depends on this interface
// so tests can swap in a recorder.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendPasswordReset emails a recovery link. The link embeds the raw reset
// token; only its hash is stored server-side.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	subject := "Recuperacion de contrasena - Participa"
	body := fmt.Sprintf(
		"Hola,\r\n\r\n"+
			"Recibimos una solicitud para restablecer tu contrasena.\r\n"+
			"Abre este enlace para continuar (valido por 1 hora):\r\n\r\n%s\r\n\r\n"+
			"Si no solicitaste este cambio, ignora este correo.\r\n",
		resetLink,
	)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, to, subject, body,
	))

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send password reset mail: %w", err)
	}
	return nil
}
