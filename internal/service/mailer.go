// Package service holds supporting services that run next to the
// request handlers: outbound mail and background cleanup.
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers one-time codes over SMTP. It satisfies
// auth.OtpSender.
type Mailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewMailer() *Mailer {
	return &Mailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

func (m *Mailer) SendOtp(to, code string) error {
	if to == m.sender {
		return fmt.Errorf("refusing to send OTP to the sender address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your verification code is %s. It expires in 5 minutes.\n\nIf you didn't request this, ignore this mail.", code))

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification mail, %w", err)
	}

	return nil
}
