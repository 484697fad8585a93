// Package mailer sends customer-facing transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"luxelush/internal/domain"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP is configured at all. Unconfigured
// environments simply skip confirmation email.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendOrderConfirmation emails the order summary to the customer.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, order *domain.Order) error {
	if !m.Enabled() {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(order.Customer.Email); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Your Luxe & Lush order %s is confirmed", order.ID))
	msg.SetBodyString(mail.TypeTextHTML, confirmationHTML(order))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func confirmationHTML(order *domain.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `
			<tr>
				<td style="padding:8px;border:1px solid #ddd;">%s</td>
				<td style="padding:8px;border:1px solid #ddd;">%s</td>
				<td style="padding:8px;border:1px solid #ddd;">%d</td>
				<td style="padding:8px;border:1px solid #ddd;">%d %s</td>
			</tr>`, item.Name, item.Size, item.Quantity, item.Price*int64(item.Quantity), order.Currency)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Georgia,serif;background:#faf7f2;padding:24px;">
	<div style="max-width:600px;margin:auto;background:#fff;padding:24px;border-radius:8px;">
		<h2 style="color:#2b2b2b;">Thank you for your order</h2>
		<p>Hi %s,</p>
		<p>Your payment for order <strong>%s</strong> is confirmed.</p>
		<table style="width:100%%;border-collapse:collapse;margin:16px 0;">
			<thead>
				<tr style="background:#f0ece4;">
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Item</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Size</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Qty</th>
					<th style="padding:8px;text-align:left;border:1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding:8px;text-align:right;font-weight:bold;">Order total:</td>
					<td style="padding:8px;font-weight:bold;">%d %s</td>
				</tr>
			</tfoot>
		</table>
		<p>We will let you know as soon as it ships.</p>
		<p style="color:#8a8a8a;">Luxe &amp; Lush Jewelry</p>
	</div>
</body>
</html>`, order.Customer.Name, order.ID, rows.String(), order.Amount, order.Currency)
}
