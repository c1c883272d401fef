package mailing

import (
	"Treasury-System-Backend/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Enabled reports whether SMTP is configured. Notifications are skipped
// entirely when it is not.
func Enabled() bool {
	cfg := LoadMailConfig()
	return cfg.SMTPHost != "" && cfg.SMTPEmail != ""
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	err = dialer.DialAndSend(mailer)
	if err != nil {
		return err
	}

	return nil
}

// ReceiptSubmittedBody renders the notification sent to the treasury
// inbox when a new receipt comes in.
func ReceiptSubmittedBody(userName, itemBought, approvedBy string) string {
	appURL := LoadMailConfig().AppURL
	return fmt.Sprintf(
		`<p>A new receipt has been submitted.</p>
<ul>
  <li><b>Submitted by:</b> %s</li>
  <li><b>Item:</b> %s</li>
  <li><b>Approver:</b> %s</li>
</ul>
<p>Review it in the <a href="%s/admin">treasury dashboard</a>.</p>`,
		userName, itemBought, approvedBy, appURL,
	)
}
