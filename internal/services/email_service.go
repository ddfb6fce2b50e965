package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/AgusMolinaCode/Trading_Bot_Api.git/internal/config"
)

// Notifier es la capacidad de enviar un mensaje a una dirección.
// El core solo depende de esta interfaz, nunca de SMTP directamente.
type Notifier interface {
	Send(to, subject, body string) error
}

type EmailService struct {
	smtp config.SMTPConfig
}

func NewEmailService(smtpConfig config.SMTPConfig) *EmailService {
	return &EmailService{smtp: smtpConfig}
}

func (s *EmailService) Send(to, subject, body string) error {
	// Si no hay configuración de email, solo registramos el mensaje y simulamos éxito
	if s.smtp.Host == "" || s.smtp.Port == "" || s.smtp.User == "" || s.smtp.Pass == "" {
		log.Printf("Configuración de email no encontrada. Mensaje para %s (%s): %s", to, subject, body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtp.User, s.smtp.Pass, s.smtp.Host)

	message := fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, subject, body)

	from := s.smtp.From
	if from == "" {
		from = s.smtp.User
	}

	err := smtp.SendMail(s.smtp.Host+":"+s.smtp.Port, auth, from, []string{to}, []byte(message))
	if err != nil {
		log.Printf("Error al enviar email a %s: %v", to, err)
		return err
	}

	return nil
}
