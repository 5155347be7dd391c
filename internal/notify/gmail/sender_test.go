package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"budgetplanner/internal/budget"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("me@example.com", budget.AlertEvent{
		Recipient: "you@example.com",
		Category:  "Bills\r\nBcc: evil@example.com",
		Total:     95,
		Ceiling:   100,
	})
	assert.True(t, strings.HasPrefix(msg, "From: me@example.com\r\nTo: you@example.com\r\n"))
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "$95.00 of your $100.00 budget")

	noFrom := BuildMessage("", budget.AlertEvent{Recipient: "you@example.com", Category: "Bills"})
	assert.True(t, strings.HasPrefix(noFrom, "To: "))
}

func TestSendThroughAPI(t *testing.T) {
	var got gmailapi.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/users/me/messages/send"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"m1"}`))
	}))
	defer srv.Close()

	svc, err := gmailapi.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	s := NewWithService(svc, "")
	require.NoError(t, s.Send(context.Background(), budget.AlertEvent{Recipient: "you@example.com", Category: "Bills", Total: 1, Ceiling: 1}))

	raw, err := base64.URLEncoding.DecodeString(got.Raw)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "To: you@example.com")

	assert.Error(t, s.Send(context.Background(), budget.AlertEvent{Category: "Bills"}))
}

func TestLoadToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"a","refresh_token":"r","token_type":"Bearer"}`), 0600))

	tok, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "r", tok.RefreshToken)

	_, err = LoadToken(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestOAuthConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"installed":{"client_id":"id","client_secret":"s","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`), 0600))

	cfg, err := OAuthConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, []string{gmailapi.GmailSendScope}, cfg.Scopes)
}
