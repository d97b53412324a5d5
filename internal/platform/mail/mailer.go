package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends OTP codes over SMTP. When no credentials are configured the
// code is logged instead of sent, which keeps local development working
// without a mail account.
type Mailer struct {
	host string
	port string
	user string
	pass string
}

func NewMailer(host, port, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

func (m *Mailer) SendOTP(email, otp string) error {
	if m.user == "" || m.pass == "" {
		log.Printf("Email not configured - OTP for %s: %s", email, otp)
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.user + "\r\n")
	msg.WriteString("To: " + email + "\r\n")
	msg.WriteString("Subject: EVALUX - Your OTP Code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; padding: 20px;">
<h2>Welcome to EVALUX!</h2>
<p>Your OTP code is:</p>
<h1 style="letter-spacing: 5px;">%s</h1>
<p>This code will expire in 10 minutes.</p>
<p>If you didn't request this code, please ignore this email.</p>
<br>
<p>- EVALUX Team</p>
</body></html>`, otp))

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{email}, []byte(msg.String())); err != nil {
		// A failed send is not fatal to registration, the OTP is
		// surfaced in the logs instead.
		log.Printf("Email send failed (%v) - OTP for %s: %s", err, email, otp)
		return nil
	}

	log.Printf("OTP sent to %s", email)
	return nil
}
