package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const offerImportedTemplateID = "3zxk54vy71x4jy6v"

// MailerSend is the production EmailNotifier, talking to the MailerSend
// template API.
type MailerSend struct {
	apiKey     string
	baseURL    string
	fromEmail  string
	fromName   string
	appURL     string
	adminEmail string
	client     *http.Client
}

func NewMailerSend(apiKey, fromEmail, fromName, appURL string) *MailerSend {
	return &MailerSend{
		apiKey:     apiKey,
		baseURL:    "https://api.mailersend.com/v1",
		fromEmail:  fromEmail,
		fromName:   fromName,
		appURL:     appURL,
		adminEmail: fromEmail,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type mailerSendRequest struct {
	From            emailAddress           `json:"from"`
	To              []emailAddress         `json:"to"`
	Subject         string                 `json:"subject"`
	TemplateID      string                 `json:"template_id"`
	Personalization []personalizationEntry `json:"personalization"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalizationEntry struct {
	Email string            `json:"email"`
	Data  map[string]string `json:"data"`
}

// SendOfferImportedEmail sends the "your offer was imported" notice with a
// stable review link built from the offer's public identity.
func (m *MailerSend) SendOfferImportedEmail(ctx context.Context, recipientEmail, recipientName, offerUUID string) error {
	vars := map[string]string{
		"offer_url":     fmt.Sprintf("%s/substytucje-procesowe/review-%s", m.appURL, offerUUID),
		"website_name":  m.fromName,
		"support_email": m.adminEmail,
	}
	return m.SendCustomEmail(ctx, recipientEmail, recipientName,
		"Substytucja - Twoje ogłoszenie zostało zaimportowane",
		offerImportedTemplateID, vars)
}

func (m *MailerSend) SendCustomEmail(ctx context.Context, recipientEmail, recipientName, subject, templateID string, vars map[string]string) error {
	reqBody := mailerSendRequest{
		From:       emailAddress{Email: m.fromEmail, Name: m.fromName},
		To:         []emailAddress{{Email: recipientEmail, Name: recipientName}},
		Subject:    subject,
		TemplateID: templateID,
		Personalization: []personalizationEntry{
			{Email: recipientEmail, Data: vars},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+"/email", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailersend error %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}
