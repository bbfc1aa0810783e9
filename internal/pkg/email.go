package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// ResetPasswordHTML is the body mailed on forgot-password; the raw token is
// entered in the app and stays valid for one hour.
func ResetPasswordHTML(token string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
<h2 style="color: #2E7D32;">Hello Plant Lover!</h2>
<p>We've received a request to reset your password for <strong>Seedy</strong>.</p>
<p><b>Password Reset Token:</b> <span style="color: #388E3C;"><strong>%s</strong></span></p>
<p>Please enter this token in the app to set your new password. This token is valid for 1 hour.</p>
<p>If you did not request a password reset, you can safely ignore this email.</p>
<p style="margin-top: 30px; color: #4CAF50;"><b>The Seedy Team</b></p>
</div>`, token)
}
