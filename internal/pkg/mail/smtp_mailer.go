package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

// SendMail delivers an HTML email through the configured SMTP relay. Auth is
// plain and only applied when credentials are set.
func SendMail(to, subject, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "587")
	sender := env.GetEnv("SMTP_SENDER", "")
	if sender == "" {
		sender = "no-reply@localhost"
	}

	var auth smtp.Auth
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := host + ":" + port
	if err := smtp.SendMail(addr, auth, sender, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("mail: send to %s via %s failed: %v", to, addr, err)
		return err
	}
	log.Printf("mail: sent to %s via %s", to, addr)
	return nil
}
