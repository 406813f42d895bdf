// Package email sends transactional mail through the Resend HTTP API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/go-bookstore/internal/config"
	"github.com/safar/go-bookstore/internal/models"
)

// Mailer is the outbound email collaborator. Implementations either
// deliver or return an error; the caller decides whether a failure
// blocks the surrounding flow.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetToken string) error
	SendOrderConfirmation(ctx context.Context, to, customerName string, order *models.Order) error
}

const resendEndpoint = "https://api.resend.com/emails"

type ResendMailer struct {
	apiKey      string
	from        string
	frontendURL string
	client      *http.Client
}

func NewResendMailer(cfg config.EmailConfig) *ResendMailer {
	return &ResendMailer{
		apiKey:      cfg.ResendAPIKey,
		from:        cfg.FromAddress,
		frontendURL: cfg.FrontendURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: resend returned %s", resp.Status)
	}
	return nil
}

// SendPasswordReset mails a time-limited reset link with the token
// embedded in the configured frontend URL.
func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", m.frontendURL, resetToken)
	html := fmt.Sprintf(`
<h1>Bookstore</h1>
<h2>Reset Your Password</h2>
<p>We received a request to reset your password. Click the link below to create a new password.</p>
<p><a href="%s">Reset Password</a></p>
<p>This link will expire in <strong>1 hour</strong>. If you didn't request this, you can safely ignore this email.</p>
<p>If the link doesn't work, copy and paste this into your browser:<br>%s</p>`,
		resetURL, resetURL)

	return m.send(ctx, to, "Reset Your Password - Bookstore", html)
}

// SendOrderConfirmation mails an order summary after checkout.
func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, to, customerName string, order *models.Order) error {
	var items bytes.Buffer
	for _, item := range order.Items {
		title := ""
		if item.Book != nil {
			title = item.Book.Title
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&items, "<tr><td>%s (x%d)</td><td>$%s</td></tr>\n", title, item.Quantity, subtotal.StringFixed(2))
	}

	orderURL := fmt.Sprintf("%s/orders/%d", m.frontendURL, order.ID)
	html := fmt.Sprintf(`
<h1>Bookstore</h1>
<h2>Order Confirmed!</h2>
<p>Thank you for your purchase, %s!</p>
<p>Order #%d placed on %s</p>
<table>%s</table>
<p><strong>Total: $%s</strong></p>
<p>Shipping to: %s</p>
<p><a href="%s">View Order Details</a></p>`,
		customerName, order.ID,
		order.OrderDate.Format("Monday, January 2, 2006"),
		items.String(),
		order.Total.StringFixed(2),
		order.ShippingAddress,
		orderURL)

	return m.send(ctx, to, fmt.Sprintf("Order Confirmed! #%d - Bookstore", order.ID), html)
}
