// File: internal/moxfield/validator.go
package moxfield

import (
	"context"
	"errors"

	"toski_backend/internal/common"

	"go.uber.org/zap"
)

// AccountValidator confirms that a Moxfield handle belongs to a real account.
type AccountValidator struct {
	provider Provider
	logger   *zap.Logger
}

func NewAccountValidator(provider Provider, logger *zap.Logger) *AccountValidator {
	return &AccountValidator{provider: provider, logger: logger.Named("AccountValidator")}
}

// ValidateAccount succeeds when Moxfield returns an account whose userName equals
// handle exactly. An empty handle is an explicit unlink and is never looked up.
func (v *AccountValidator) ValidateAccount(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}

	account, err := v.provider.GetAccount(ctx, handle)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !IsTransient(err) {
			v.logger.Info("Moxfield account not found",
				zap.String("handle", handle), zap.Int("status", statusErr.StatusCode))
		} else {
			v.logger.Error("Moxfield account lookup failed", zap.String("handle", handle), zap.Error(err))
		}
		return common.ErrInvalidExternalAccount.Wrap(err)
	}

	if account.UserName != handle {
		v.logger.Info("Moxfield handle mismatch",
			zap.String("handle", handle), zap.String("returnedUserName", account.UserName))
		return common.ErrInvalidExternalAccount
	}
	return nil
}
