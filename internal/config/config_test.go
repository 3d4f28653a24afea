package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DBSource, "dbname=toski")
	assert.Equal(t, 5*time.Second, cfg.ExternalCallTimeout)
	assert.Equal(t, 10*time.Minute, cfg.MoxfieldCacheTTL)
	assert.Zero(t, cfg.MoxfieldRequestsPerSecond, "outbound pacing is off unless configured")
	assert.Equal(t, DefaultMatchFormSubmitURL, cfg.MatchFormSubmitURL)
	assert.False(t, cfg.MatchSubmissionLenient)
	assert.False(t, cfg.AdminConfigured())
	assert.Equal(t, "https://discord.com/api", cfg.DiscordAPIBaseURL)
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/toski")
	t.Setenv("ADMIN_USER_ID", " 123456789 ")
	t.Setenv("MOXFIELD_API_BASE_URL", "http://moxfield.local/")
	t.Setenv("MATCH_SUBMISSION_LENIENT", "true")
	t.Setenv("EXTERNAL_CALL_TIMEOUT_SECONDS", "2")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@db:5432/toski", cfg.DBSource)
	assert.Equal(t, "123456789", cfg.AdminUserID)
	assert.True(t, cfg.AdminConfigured())
	assert.Equal(t, "http://moxfield.local", cfg.MoxfieldAPIBaseURL)
	assert.True(t, cfg.MatchSubmissionLenient)
	assert.Equal(t, 2*time.Second, cfg.ExternalCallTimeout)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "unknown driver", env: map[string]string{"DB_DRIVER": "mongo"}, want: "unsupported DB_DRIVER"},
		{name: "sqlite without source", env: map[string]string{"DB_DRIVER": "sqlite"}, want: "DB_SOURCE is required"},
		{name: "zero timeout", env: map[string]string{"EXTERNAL_CALL_TIMEOUT_SECONDS": "0"}, want: "EXTERNAL_CALL_TIMEOUT_SECONDS"},
		{name: "negative rate", env: map[string]string{"MOXFIELD_REQUESTS_PER_SECOND": "-1"}, want: "MOXFIELD_REQUESTS_PER_SECOND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromViper(newViper())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
