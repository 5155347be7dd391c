// Command gmail-oauth-init runs the one-time OAuth consent flow for the Gmail
// notifier and stores the resulting token.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"

	"budgetplanner/internal/cli"
	"budgetplanner/internal/log"
	"budgetplanner/internal/notify/gmail"
)

const callbackPath = "/oauth/callback"

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentNotify)

	credentials := getenv("GMAIL_CREDENTIALS_FILE", "credentials.json")
	tokenFile := getenv("GMAIL_TOKEN_FILE", "token.json")
	port := getenv("OAUTH_REDIRECT_PORT", "8085")

	cfg, err := gmail.OAuthConfig(credentials)
	if err != nil {
		logger.Error("Failed to load OAuth client", log.FieldError, err, "file", credentials)
		os.Exit(1)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s%s", port, callbackPath)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	tok, err := authorize(ctx, cfg, port, logger)
	if err != nil {
		logger.Error("OAuth flow failed", log.FieldError, err)
		os.Exit(1)
	}
	if err := saveToken(tokenFile, tok); err != nil {
		logger.Error("Failed to save token", log.FieldError, err, "file", tokenFile)
		os.Exit(1)
	}
	logger.Info("Token saved", "file", tokenFile)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// authorize prints the consent URL and waits for the browser redirect.
func authorize(ctx context.Context, cfg *oauth2.Config, port string, logger *log.Logger) (*oauth2.Token, error) {
	state := fmt.Sprintf("budgetplanner-%d", time.Now().UnixNano())
	codes := make(chan string, 1)
	failures := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			report(failures, errors.New("state mismatch in OAuth callback"))
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			report(failures, errors.New("OAuth callback carried no code"))
			return
		}
		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		select {
		case codes <- code:
		default:
		}
	})

	ln, err := net.Listen("tcp", "localhost:"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", port, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(failures, err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	logger.Info("Open the following URL in a browser to authorize Gmail sending")
	fmt.Println(authURL)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-failures:
		return nil, err
	case code := <-codes:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchange code: %w", err)
		}
		return tok, nil
	}
}

func report(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
