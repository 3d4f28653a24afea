// File: internal/auth/verifier.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"toski_backend/internal/common"
	"toski_backend/internal/config"

	"go.uber.org/zap"
)

// Verifier decides whether the holder of an access token may act as a given user,
// or as the administrator. A nil error means authorized; otherwise the error is a
// *common.Error of kind AuthDenied or Unavailable.
type Verifier interface {
	VerifyUser(ctx context.Context, accessToken, userID string) error
	VerifyAdmin(ctx context.Context, accessToken string) error
}

// DiscordVerifier implements Verifier against Discord. The administrator id is fixed
// at construction.
type DiscordVerifier struct {
	provider    IdentityProvider
	adminUserID string
	logger      *zap.Logger
}

var _ Verifier = (*DiscordVerifier)(nil)

// NewVerifier creates a verifier using cfg.AdminUserID as the administrator.
func NewVerifier(provider IdentityProvider, cfg *config.Config, logger *zap.Logger) *DiscordVerifier {
	if !cfg.AdminConfigured() {
		logger.Warn("ADMIN_USER_ID is not set; admin operations will always be denied")
	}
	return NewVerifierWithAdmin(provider, cfg.AdminUserID, logger)
}

// NewVerifierWithAdmin creates a verifier with an explicit administrator id; empty disables admin access.
func NewVerifierWithAdmin(provider IdentityProvider, adminUserID string, logger *zap.Logger) *DiscordVerifier {
	return &DiscordVerifier{
		provider:    provider,
		adminUserID: adminUserID,
		logger:      logger.Named("IdentityVerifier"),
	}
}

// VerifyUser checks that accessToken was issued to userID.
func (v *DiscordVerifier) VerifyUser(ctx context.Context, accessToken, userID string) error {
	subject, err := v.subject(ctx, accessToken)
	if err != nil {
		return err
	}
	if subject != userID {
		v.logger.Warn("Access token subject does not match claimed user",
			zap.String("claimedUserID", userID), zap.String("tokenSubject", subject))
		return common.ErrIdentityMismatch
	}
	return nil
}

// VerifyAdmin checks that accessToken belongs to the configured administrator.
func (v *DiscordVerifier) VerifyAdmin(ctx context.Context, accessToken string) error {
	if v.adminUserID == "" {
		v.logger.Warn("Admin operation attempted but no administrator is configured")
		return common.ErrNotAdmin
	}
	subject, err := v.subject(ctx, accessToken)
	if err != nil {
		return err
	}
	if subject != v.adminUserID {
		v.logger.Warn("Non-admin attempted an admin operation", zap.String("tokenSubject", subject))
		return common.ErrNotAdmin
	}
	return nil
}

func (v *DiscordVerifier) subject(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", common.ErrMissingAccessToken
	}
	user, err := v.provider.CurrentUser(ctx, accessToken)
	if err == nil {
		return user.ID, nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) && isTokenRejection(statusErr.StatusCode) {
		v.logger.Info("Identity provider rejected access token", zap.Int("status", statusErr.StatusCode))
		return "", common.ErrInvalidToken.Wrap(err)
	}

	// Transport failures, timeouts, rate limiting and 5xx: the token was never judged.
	v.logger.Error("Identity provider call failed", zap.Error(err))
	return "", common.ErrIdentityUnreachable.Wrap(err)
}

// isTokenRejection reports whether Discord judged the token itself. 429 is excluded:
// a rate-limited call says nothing about the token.
func isTokenRejection(status int) bool {
	return status >= http.StatusBadRequest &&
		status < http.StatusInternalServerError &&
		status != http.StatusTooManyRequests
}
