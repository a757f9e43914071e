package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"

	"beacon/config"
	"beacon/infras/otel"
	"beacon/shared/constant"
)

// Confirmation is the email sent to a requester once their demo call is scheduled.
type Confirmation struct {
	To          string
	Name        string
	Date        string
	Time        string
	MeetingLink string
	CompanyName string
	Description string
}

// AdminAlert notifies the internal sales address that a new request arrived.
type AdminAlert struct {
	CustomerName  string
	Company       string
	Email         string
	ScheduledDate string
	Description   string
}

type Mailer interface {
	SendConfirmation(ctx context.Context, msg Confirmation) error
	SendAdminAlert(ctx context.Context, msg AdminAlert) error
}

type mailgunImpl struct {
	cfg    *config.Config
	otel   otel.Otel
	client *mailgun.MailgunImpl
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	if !cfg.External.Mailgun.Enable {
		log.Warn().Msg("Mailgun integration disabled, emails will be logged only")

		return &mailgunImpl{cfg: cfg, otel: ot}
	}

	return &mailgunImpl{
		cfg:    cfg,
		otel:   ot,
		client: mailgun.NewMailgun(cfg.External.Mailgun.Domain, cfg.External.Mailgun.APIKey),
	}
}

func (m *mailgunImpl) SendConfirmation(ctx context.Context, msg Confirmation) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.SendConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	subject := "Your demo call is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour demo call is scheduled for %s at %s.\nJoin link: %s\n\nCompany: %s\nNotes: %s\n",
		msg.Name, msg.Date, msg.Time, msg.MeetingLink, msg.CompanyName, msg.Description,
	)

	return m.send(ctx, msg.To, subject, body)
}

func (m *mailgunImpl) SendAdminAlert(ctx context.Context, msg AdminAlert) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.SendAdminAlert")
	defer scope.End()
	defer scope.TraceIfError(err)

	subject := fmt.Sprintf("New demo request: %s", msg.CustomerName)
	body := fmt.Sprintf(
		"New demo request received.\n\nName: %s\nCompany: %s\nEmail: %s\nScheduled: %s\nNotes: %s\n",
		msg.CustomerName, msg.Company, msg.Email, msg.ScheduledDate, msg.Description,
	)

	return m.send(ctx, m.cfg.External.Mailgun.AdminEmail, subject, body)
}

func (m *mailgunImpl) send(ctx context.Context, to, subject, body string) error {
	if !m.cfg.External.Mailgun.Enable {
		log.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("Mailgun disabled, simulated email send")

		return nil
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.External.Mailgun.FromName, m.cfg.External.Mailgun.FromEmail)
	message := m.client.NewMessage(from, subject, body, to)

	_, id, err := m.client.Send(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("message_id", id).Msg("Email sent successfully")

	return nil
}
