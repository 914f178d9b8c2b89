// Package mailer delivers transactional email through Resend.
package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

type Mailer struct {
	client *resend.Client
	from   string
}

func New(apiKey, from string) *Mailer {
	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendVerification emails the account-verification link. Failures are the
// caller's to log; registration itself is already committed at this point.
func (m *Mailer) SendVerification(to, firstName, verificationURL string) error {
	html := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for registering. Please verify your email by clicking the link below:</p>
		<a href="%s">%s</a>`, firstName, verificationURL, verificationURL)

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Verify your account",
		Html:    html,
	}

	_, err := m.client.Emails.Send(params)
	return err
}
