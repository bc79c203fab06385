package notify

import "context"

// EmailNotifier is the outbound transactional email collaborator. Send
// failures are soft: callers log them and move on, they never roll back the
// update that triggered the notification.
type EmailNotifier interface {
	SendOfferImportedEmail(ctx context.Context, recipientEmail, recipientName, offerUUID string) error
	SendCustomEmail(ctx context.Context, recipientEmail, recipientName, subject, templateID string, vars map[string]string) error
}

// ChatNotifier is the best-effort moderator chat/alert channel.
type ChatNotifier interface {
	SendMessage(text string) error
	SendRichMessage(title, body string, fields map[string]string) error
}

// FakeEmailNotifier records calls instead of sending. Injected in tests and
// in non-production environments.
type FakeEmailNotifier struct {
	Sent []SentEmail
	Err  error
}

type SentEmail struct {
	Recipient string
	Name      string
	OfferUUID string
	Subject   string
}

func (f *FakeEmailNotifier) SendOfferImportedEmail(ctx context.Context, recipientEmail, recipientName, offerUUID string) error {
	f.Sent = append(f.Sent, SentEmail{Recipient: recipientEmail, Name: recipientName, OfferUUID: offerUUID})
	return f.Err
}

func (f *FakeEmailNotifier) SendCustomEmail(ctx context.Context, recipientEmail, recipientName, subject, templateID string, vars map[string]string) error {
	f.Sent = append(f.Sent, SentEmail{Recipient: recipientEmail, Name: recipientName, Subject: subject})
	return f.Err
}

// NoopChat swallows chat notifications when no chat channel is configured.
type NoopChat struct{}

func (NoopChat) SendMessage(text string) error { return nil }

func (NoopChat) SendRichMessage(title, body string, fields map[string]string) error { return nil }
