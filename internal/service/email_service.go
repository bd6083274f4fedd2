package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// Email is a single outbound message.
type Email struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers transactional email. One attempt per call, no retry.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// sendGridClient is the part of the SendGrid client used by SendGridMailer.
type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	client sendGridClient
	from   *mail.Email
}

// NewSendGridMailer creates a SendGrid backed Mailer.
func NewSendGridMailer(apiKey, fromAddress, fromName string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid API key not set")
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}, nil
}

// Send implements Mailer.
func (m *SendGridMailer) Send(ctx context.Context, email *Email) error {
	to := mail.NewEmail(email.ToName, email.To)
	message := mail.NewSingleEmail(m.from, email.Subject, to, email.Text, email.HTML)
	if email.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", email.ReplyTo))
	}

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", utils.MaskEmail(email.To)).Msg("Failed to send email")
		return err
	}
	if response.StatusCode >= 300 {
		log.Error().
			Int("status_code", response.StatusCode).
			Str("to", utils.MaskEmail(email.To)).
			Msg("SendGrid rejected email")
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Info().Int("status_code", response.StatusCode).Str("subject", email.Subject).Msg("Email sent")
	return nil
}

// resendClient is the part of the Resend email API used by ResendMailer.
type resendClient interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer sends email through Resend.
type ResendMailer struct {
	client resendClient
	from   string
}

// NewResendMailer creates a Resend backed Mailer.
func NewResendMailer(apiKey, fromAddress, fromName string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key not set")
	}

	from := fromAddress
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromAddress)
	}

	return &ResendMailer{
		client: resend.NewClient(apiKey).Emails,
		from:   from,
	}, nil
}

// Send implements Mailer.
func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	response, err := m.client.SendWithContext(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("to", utils.MaskEmail(email.To)).Msg("Failed to send email")
		return err
	}

	log.Info().Str("email_id", response.Id).Str("subject", email.Subject).Msg("Email sent")
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
// Used in development when no provider is configured.
type LogMailer struct{}

// Send implements Mailer.
func (LogMailer) Send(_ context.Context, email *Email) error {
	log.Info().
		Str("to", utils.MaskEmail(email.To)).
		Str("reply_to", utils.MaskEmail(email.ReplyTo)).
		Str("subject", email.Subject).
		Str("body", email.Text).
		Msg("Email not delivered (log mailer)")
	return nil
}

// NewMailer builds the Mailer selected by the email settings.
func NewMailer(cfg *config.EmailSettings) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case constants.EmailProviderSendGrid:
		return NewSendGridMailer(cfg.APIKey, cfg.From, cfg.FromName)
	case constants.EmailProviderResend:
		return NewResendMailer(cfg.APIKey, cfg.From, cfg.FromName)
	case constants.EmailProviderLog, "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}

// EmailService composes the application's transactional messages.
type EmailService struct {
	mailer         Mailer
	supportAddress string
}

// NewEmailService creates a new EmailService.
func NewEmailService(mailer Mailer, supportAddress string) *EmailService {
	return &EmailService{
		mailer:         mailer,
		supportAddress: supportAddress,
	}
}

// SendPasswordResetEmail sends the reset link to the user.
// Delivery failures are returned as DeliveryError.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetURL string) error {
	htmlBody := fmt.Sprintf(`<h2>Hello %s</h2>
<p>Please use the url below to reset your password.</p>
<p>This reset link is valid for only 30 minutes.</p>
<a href="%s" clicktracking=off>%s</a>
<p>Regards...</p>`, html.EscapeString(toName), resetURL, resetURL)

	err := s.mailer.Send(ctx, &Email{
		To:      toEmail,
		ToName:  toName,
		Subject: "Password Reset Request",
		HTML:    htmlBody,
		Text:    fmt.Sprintf("Hello %s, use the following link within 30 minutes to reset your password: %s", toName, resetURL),
	})
	if err != nil {
		return utils.NewDeliveryError(err)
	}
	return nil
}

// SendContactEmail forwards a user's message to the support mailbox with
// reply-to set to the user.
func (s *EmailService) SendContactEmail(ctx context.Context, fromEmail, subject, message string) error {
	if s.supportAddress == "" {
		return utils.NewDeliveryError(fmt.Errorf("support address not configured"))
	}

	err := s.mailer.Send(ctx, &Email{
		To:      s.supportAddress,
		ReplyTo: fromEmail,
		Subject: subject,
		HTML:    fmt.Sprintf("<p>%s</p>", html.EscapeString(message)),
		Text:    message,
	})
	if err != nil {
		return utils.NewDeliveryError(err)
	}
	return nil
}
