package sendemail

import (
	"errors"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	SendEmail(subject, toEmail, plainTextContent, htmlContent string) error
	SendPitchNotification(recipientName, toEmail, preview string) error
}

type emailService struct {
	client      *sendgrid.Client
	senderEmail string
	senderName  string
}

func NewEmailService() EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	senderEmail := os.Getenv("SENDGRID_SENDER_EMAIL")
	senderName := os.Getenv("SENDGRID_SENDER_NAME")
	return &emailService{
		client:      sendgrid.NewSendClient(apiKey),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (e *emailService) SendEmail(subject, toEmail, plainTextContent, htmlContent string) error {
	from := mail.NewEmail(e.senderName, e.senderEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := e.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return errors.New("failed to send email")
	}
	return nil
}

// SendPitchNotification tells an offline user they received a new pitch.
// The preview is truncated so the full pitch stays on-platform.
func (e *emailService) SendPitchNotification(recipientName, toEmail, preview string) error {
	const maxPreview = 200
	if len(preview) > maxPreview {
		preview = preview[:maxPreview] + "..."
	}

	subject := "You have a new pitch waiting"
	plain := fmt.Sprintf("Hi %s,\n\nA founder sent you a new pitch:\n\n%q\n\nLog in to read and respond.", recipientName, preview)
	html := fmt.Sprintf("<p>Hi %s,</p><p>A founder sent you a new pitch:</p><blockquote>%s</blockquote><p>Log in to read and respond.</p>", recipientName, preview)

	return e.SendEmail(subject, toEmail, plain, html)
}
