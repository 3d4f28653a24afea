package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusForKind(KindAuthDenied))
	assert.Equal(t, http.StatusBadRequest, StatusForKind(KindValidation))
	assert.Equal(t, http.StatusBadRequest, StatusForKind(KindNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, StatusForKind(KindUnavailable))
	assert.Equal(t, http.StatusInternalServerError, StatusForKind(KindInternal))
}

func TestError_WrapKeepsIdentity(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := fmt.Errorf("verify: %w", ErrIdentityUnreachable.Wrap(cause))

	assert.ErrorIs(t, wrapped, ErrIdentityUnreachable)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, ErrInvalidToken)
	assert.Equal(t, KindUnavailable, KindOf(wrapped))
	assert.Nil(t, ErrIdentityUnreachable.Err, "Wrap must not mutate the sentinel")
}

func TestToAPIError(t *testing.T) {
	apiErr := ToAPIError(ErrDeckLimitReached)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "DECK_LIMIT_REACHED", apiErr.Code)

	apiErr = ToAPIError(errors.New("pq: connection reset with secret details"))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, ErrInternalServer.Message, apiErr.Message)
	assert.NotContains(t, apiErr.Message, "secret")
}

func TestIsSnowflake(t *testing.T) {
	assert.True(t, IsSnowflake("42"))
	assert.True(t, IsSnowflake("123456789012345678"))
	assert.False(t, IsSnowflake(""))
	assert.False(t, IsSnowflake("12a"))
	assert.False(t, IsSnowflake("-1"))
}

func TestParseAccessToken(t *testing.T) {
	assert.Equal(t, "abc", ParseAccessToken("abc"))
	assert.Equal(t, "abc", ParseAccessToken("Bearer abc"))
	assert.Equal(t, "abc", ParseAccessToken("  bearer   abc "))
	assert.Equal(t, "", ParseAccessToken("   "))
}
