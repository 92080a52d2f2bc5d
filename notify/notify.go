package notify

import (
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Notifier delivers best-effort notifications after state transitions.
// Implementations must never block the caller on delivery and must swallow
// delivery failures (log only).
type Notifier interface {
	SendEmail(to, subject, html string)
	SendSMS(phone, message string)
}

// ResendNotifier sends email through Resend and logs simulated SMS messages.
type ResendNotifier struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendNotifier(apiKey, from string, log *zap.Logger) *ResendNotifier {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &ResendNotifier{client: client, from: from, log: log}
}

func (n *ResendNotifier) SendEmail(to, subject, html string) {
	if n.client == nil {
		n.log.Info("email notification skipped (no API key)", zap.String("to", to), zap.String("subject", subject))
		return
	}
	go func() {
		_, err := n.client.Emails.Send(&resend.SendEmailRequest{
			From:    n.from,
			To:      []string{to},
			Subject: subject,
			Html:    html,
		})
		if err != nil {
			n.log.Error("failed to send email", zap.String("to", to), zap.Error(err))
			return
		}
		n.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	}()
}

// SendSMS is a simulated side effect: the message is only logged.
func (n *ResendNotifier) SendSMS(phone, message string) {
	n.log.Info("sms notification (simulated)", zap.String("phone", phone), zap.String("message", message))
}
