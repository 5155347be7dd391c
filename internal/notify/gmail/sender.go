// Package gmail sends budget alerts as plain-text email through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/notify"
)

type Config struct {
	CredentialsFile string
	TokenFile       string
	// From is the sender address; empty lets Gmail use the account address.
	From string
}

type Sender struct {
	svc  *gmailapi.Service
	from string
}

// New builds a Sender from an OAuth client file and a saved token, as
// written by cmd/gmail-oauth-init.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	oauthCfg, err := OAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return NewWithService(svc, cfg.From), nil
}

// NewWithService wraps an existing Gmail service.
func NewWithService(svc *gmailapi.Service, from string) *Sender {
	return &Sender{svc: svc, from: from}
}

// OAuthConfig reads an OAuth client file scoped for sending mail.
func OAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gmailapi.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a JSON-encoded OAuth token.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

func (s *Sender) Send(ctx context.Context, event budget.AlertEvent) error {
	if strings.TrimSpace(event.Recipient) == "" {
		return fmt.Errorf("alert for %s has no recipient", event.Category)
	}
	raw := BuildMessage(s.from, event)
	msg := &gmailapi.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}
	if _, err := s.svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// BuildMessage renders an RFC 5322 message for event.
func BuildMessage(from string, event budget.AlertEvent) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	}
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(event.Recipient))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(notify.Subject(event))))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(notify.Body(event))
	return b.String()
}

// headerValue strips line breaks so values cannot inject headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
