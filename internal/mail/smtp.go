package mail

import (
	"context"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/portfolio/backend/internal/model"
)

// Config is the SMTP relay used for contact notifications.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	To   string
}

// Enabled reports whether enough settings are present to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.To != ""
}

type sendFunc func(ctx context.Context, m *gomail.Msg) error

// SMTPNotifier mails each contact message to the site owner.
type SMTPNotifier struct {
	cfg  Config
	send sendFunc
}

// NewSMTPNotifier returns a notifier for cfg. The sender address is cfg.User,
// or cfg.To when no user is configured.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	n := &SMTPNotifier{cfg: cfg}
	n.send = n.dialAndSend
	return n
}

func (n *SMTPNotifier) NotifyContact(ctx context.Context, msg model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := n.message(msg)
	if err != nil {
		return fmt.Errorf("compose contact mail: %w", err)
	}
	if err := n.send(ctx, m); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

// message builds the notification. Header encoding and address validation are
// left to go-mail; an address carrying line breaks is rejected there.
func (n *SMTPNotifier) message(msg model.ContactMessage) (*gomail.Msg, error) {
	from := n.cfg.User
	if from == "" {
		from = n.cfg.To
	}
	sender := msg.Email
	if msg.Name != "" {
		sender = msg.Name + " <" + msg.Email + ">"
	}

	m := gomail.NewMsg()
	err := m.From(from)
	if err != nil {
		return nil, err
	}
	if err := m.To(n.cfg.To); err != nil {
		return nil, err
	}
	if msg.Name != "" {
		err = m.ReplyToFormat(singleLine(msg.Name), msg.Email)
	} else {
		err = m.ReplyTo(msg.Email)
	}
	if err != nil {
		return nil, err
	}
	m.Subject("New contact message from " + singleLine(sender))
	if !msg.CreatedAt.IsZero() {
		m.SetDateWithValue(msg.CreatedAt)
	}
	m.SetBodyString(gomail.TypeTextPlain, "From: "+singleLine(sender)+"\n\n"+msg.Message+"\n")
	return m, nil
}

func (n *SMTPNotifier) dialAndSend(ctx context.Context, m *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if n.cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.cfg.User),
			gomail.WithPassword(n.cfg.Pass),
		)
	}
	client, err := gomail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}

// singleLine folds line breaks in user input into spaces.
func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
