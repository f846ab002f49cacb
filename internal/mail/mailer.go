// Package mail relays order notifications to the hosted email API.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"golang.org/x/sync/errgroup"
)

// Mailer sends the customer confirmation and the admin alert for an order.
type Mailer interface {
	SendOrderEmails(ctx context.Context, n Notification) error
}

// ResendMailer submits both messages to the Resend HTTP API. The two sends
// run concurrently and are joined before returning; either failure fails
// the whole call. There is no retry.
type ResendMailer struct {
	client     *resend.Client
	from       string
	adminEmail string
	siteURL    string
}

func NewResendMailer(apiKey, from, adminEmail, siteURL string) *ResendMailer {
	return &ResendMailer{
		client:     resend.NewClient(apiKey),
		from:       from,
		adminEmail: adminEmail,
		siteURL:    siteURL,
	}
}

func (m *ResendMailer) SendOrderEmails(ctx context.Context, n Notification) error {
	customerHTML, err := CustomerHTML(n)
	if err != nil {
		return fmt.Errorf("render customer email: %w", err)
	}
	adminHTML, err := AdminHTML(n, m.siteURL+"/admin/orders")
	if err != nil {
		return fmt.Errorf("render admin email: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.send(ctx, n.CustomerEmail,
			fmt.Sprintf("Confirmation de commande #%s", n.OrderNumber), customerHTML)
	})
	g.Go(func() error {
		return m.send(ctx, m.adminEmail,
			fmt.Sprintf("[ADMIN] Nouvelle commande reçue #%s", n.OrderNumber), adminHTML)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("send order emails: %w", err)
	}
	return nil
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}
