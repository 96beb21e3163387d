package notify

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// HTTPPoster is the slice of pkg/clients the mailer needs.
type HTTPPoster interface {
	Post(url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

// Mailer delivers user notifications through the external email service.
// Delivery is fire and forget; a dead mailer must never affect a credit or a
// withdrawal, so errors stop here.
type Mailer struct {
	client  HTTPPoster
	address string
}

func NewMailer(client HTTPPoster, address string) *Mailer {
	return &Mailer{
		client:  client,
		address: address,
	}
}

type emailPayload struct {
	UserID   int    `json:"user_id"`
	Template string `json:"template"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

func (m *Mailer) send(payload emailPayload) error {
	if m.address == "" {
		zap.L().Debug("mailer not configured, skipping email", zap.String("template", payload.Template))
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("can't marshal email payload: %w", err)
	}

	status, _, err := m.client.Post(m.address, nil, body)
	if err != nil {
		return fmt.Errorf("can't deliver email: %w", err)
	}
	if status >= http.StatusMultipleChoices {
		return fmt.Errorf("email service responded with status %d", status)
	}
	return nil
}

func (m *Mailer) SendCreditEmail(userID int, amountCents int64, offerName string) error {
	return m.send(emailPayload{
		UserID:   userID,
		Template: "offer-credited",
		Subject:  "You just earned cash",
		Body:     fmt.Sprintf("Your reward of $%.2f for %q has been credited.", float64(amountCents)/100, offerName),
	})
}

func (m *Mailer) SendWithdrawalEmail(userID int, status string, amountCents int64, reason string) error {
	body := fmt.Sprintf("Your withdrawal of $%.2f is now %s.", float64(amountCents)/100, status)
	if reason != "" {
		body += " Reason: " + reason
	}
	return m.send(emailPayload{
		UserID:   userID,
		Template: "withdrawal-status",
		Subject:  "Withdrawal update",
		Body:     body,
	})
}

func (m *Mailer) SendAchievementEmail(userID int, name string) error {
	return m.send(emailPayload{
		UserID:   userID,
		Template: "achievement-unlocked",
		Subject:  "Achievement unlocked",
		Body:     fmt.Sprintf("Congratulations, you unlocked %q!", name),
	})
}
