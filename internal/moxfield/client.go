// File: internal/moxfield/client.go
package moxfield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"toski_backend/internal/common"
	"toski_backend/internal/config"
	"toski_backend/internal/platform/cache"
	"toski_backend/internal/platform/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	providerName    = "moxfield"
	maxResponseSize = 4 << 20
	limiterBurst    = 10
)

type cacheBypassKey struct{}

// WithoutCache marks ctx so lookups made with it skip the lookup cache in both directions.
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheBypassKey{}, true)
}

// UsesCache reports whether lookups made with ctx may be served from the cache.
func UsesCache(ctx context.Context) bool {
	bypass, _ := ctx.Value(cacheBypassKey{}).(bool)
	return !bypass
}

// Account is the part of a Moxfield user payload that validation reads.
// Raw holds the full provider response.
type Account struct {
	UserName string          `json:"userName"`
	Raw      json.RawMessage `json:"-"`
}

// Deck is the part of a Moxfield deck payload that resolution reads.
type Deck struct {
	PublicID string          `json:"publicId"`
	Name     string          `json:"name"`
	Raw      json.RawMessage `json:"-"`
}

// Provider looks up Moxfield accounts and decks.
type Provider interface {
	GetAccount(ctx context.Context, handle string) (*Account, error)
	GetDeck(ctx context.Context, publicID string) (*Deck, error)
}

// StatusError reports a non-2xx answer from Moxfield.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("moxfield %s returned status %d", e.Path, e.StatusCode)
}

// IsTransient reports whether err came from Moxfield being unreachable or failing,
// as opposed to Moxfield answering that the thing does not exist or does not match.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}
	if domainErr, ok := common.AsError(err); ok {
		return domainErr.Err != nil
	}
	return true
}

// Client is the HTTP Provider for api2.moxfield.com. Requests are optionally paced
// by a token bucket, and successful lookups are cached when a cache is configured.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	cacheTTL   time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Cache
	metrics    *metrics.Registry
	logger     *zap.Logger
}

var _ Provider = (*Client)(nil)

// NewClient creates a Moxfield client. lookupCache may be nil.
func NewClient(cfg *config.Config, lookupCache cache.Cache, registry *metrics.Registry, logger *zap.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.MoxfieldRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MoxfieldRequestsPerSecond), limiterBurst)
	}
	return &Client{
		baseURL:    cfg.MoxfieldAPIBaseURL,
		userAgent:  cfg.MoxfieldUserAgent,
		timeout:    cfg.ExternalCallTimeout,
		cacheTTL:   cfg.MoxfieldCacheTTL,
		httpClient: &http.Client{Timeout: cfg.ExternalCallTimeout},
		limiter:    limiter,
		cache:      lookupCache,
		metrics:    registry,
		logger:     logger.Named("MoxfieldClient"),
	}
}

// GetAccount fetches /v1/users/{handle}.
func (m *Client) GetAccount(ctx context.Context, handle string) (*Account, error) {
	raw, err := m.fetch(ctx, "get_account", "/v1/users/"+url.PathEscape(handle), "moxfield:user:"+handle)
	if err != nil {
		return nil, err
	}
	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode moxfield account: %w", err)
	}
	account.Raw = raw
	return &account, nil
}

// GetDeck fetches /v3/decks/all/{publicID}.
func (m *Client) GetDeck(ctx context.Context, publicID string) (*Deck, error) {
	raw, err := m.fetch(ctx, "get_deck", "/v3/decks/all/"+url.PathEscape(publicID), "moxfield:deck:"+publicID)
	if err != nil {
		return nil, err
	}
	var deck Deck
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("decode moxfield deck: %w", err)
	}
	deck.Raw = raw
	return &deck, nil
}

func (m *Client) fetch(ctx context.Context, operation, path, cacheKey string) (json.RawMessage, error) {
	useCache := m.cache != nil && UsesCache(ctx)
	if useCache {
		var cached json.RawMessage
		found, err := m.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			m.logger.Warn("Moxfield cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	// Queueing for the limiter is bounded by the caller's context only; the call
	// timeout starts once a token is held.
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("moxfield rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build moxfield request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if m.userAgent != "" {
		req.Header.Set("User-Agent", m.userAgent)
	}

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.metrics.ObserveOutbound(providerName, operation, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("moxfield %s: %w", path, err)
	}
	defer resp.Body.Close()
	m.metrics.ObserveOutbound(providerName, operation, metrics.OutcomeForStatus(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read moxfield %s: %w", path, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("moxfield %s returned invalid JSON", path)
	}

	if useCache && m.cacheTTL > 0 {
		if err := m.cache.Set(ctx, cacheKey, json.RawMessage(body), m.cacheTTL); err != nil {
			m.logger.Warn("Moxfield cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return body, nil
}
