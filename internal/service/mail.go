package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host     string
	port     int
	sender   string
	password string
	baseURL  string
}

func NewMailer() *Mailer {
	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	return &Mailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
		baseURL:  fmt.Sprintf("%s://%s", scheme, viper.GetString("host.domain")),
	}
}

// SendConfirmationMail delivers the email confirmation link. Meant to
// run on the task queue, a failure here never fails the signup request
func (m *Mailer) SendConfirmationMail(sendTo, username, token string) error {
	if sendTo == m.sender {
		return errors.New("invalid email address")
	}

	confirmLink := fmt.Sprintf("%s/api/auth/confirm/%s", m.baseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", sendTo)
	msg.SetHeader("Subject", "Confirm your email address")
	msg.SetBody("text/html", fmt.Sprintf(
		"Hi %s,<br><br>Click <a href='%s'>here</a> to confirm your email address.",
		username, confirmLink))

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation mail, %w", err)
	}

	return nil
}
