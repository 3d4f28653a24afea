// File: internal/auth/discord.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"toski_backend/internal/config"
	"toski_backend/internal/platform/metrics"

	"golang.org/x/oauth2"
)

const discordProviderName = "discord"

// DiscordUser is the subset of Discord's /users/@me payload this service relies on.
type DiscordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
}

// IdentityProvider resolves a bearer token to the user it was issued for.
type IdentityProvider interface {
	CurrentUser(ctx context.Context, accessToken string) (*DiscordUser, error)
}

// StatusError reports a non-2xx answer from the identity provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("identity provider returned status %d: %s", e.StatusCode, e.Body)
}

// DiscordClient calls Discord's REST API on behalf of the token holder.
type DiscordClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Registry
}

// NewDiscordClient creates a Discord client bounded by EXTERNAL_CALL_TIMEOUT_SECONDS.
func NewDiscordClient(cfg *config.Config, registry *metrics.Registry) *DiscordClient {
	return &DiscordClient{
		baseURL:    cfg.DiscordAPIBaseURL,
		timeout:    cfg.ExternalCallTimeout,
		httpClient: &http.Client{Timeout: cfg.ExternalCallTimeout},
		metrics:    registry,
	}
}

var _ IdentityProvider = (*DiscordClient)(nil)

// CurrentUser fetches /users/@me with accessToken as the OAuth bearer token.
func (d *DiscordClient) CurrentUser(ctx context.Context, accessToken string) (*DiscordUser, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// oauth2.NewClient borrows the transport of the client stored under oauth2.HTTPClient.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, d.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		d.metrics.ObserveOutbound(discordProviderName, "current_user", metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("discord users/@me: %w", err)
	}
	defer resp.Body.Close()
	d.metrics.ObserveOutbound(discordProviderName, "current_user", metrics.OutcomeForStatus(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode discord user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("discord user payload has no id")
	}
	return &user, nil
}
