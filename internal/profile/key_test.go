package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   string
	}{
		{name: "short id is right padded", userID: "42", want: "420000000000000000000000"},
		{name: "discord snowflake", userID: "123456789012345678", want: "123456789012345678000000"},
		{name: "exact width unchanged", userID: "abcdefghijklmnopqrstuvwx", want: "abcdefghijklmnopqrstuvwx"},
		{name: "long id truncated", userID: "abcdefghijklmnopqrstuvwxyz0123", want: "abcdefghijklmnopqrstuvwx"},
		{name: "empty id", userID: "", want: strings.Repeat("0", KeyWidth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveKey(tt.userID)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, KeyWidth)
			assert.Equal(t, got, DeriveKey(tt.userID), "derivation must be deterministic")
		})
	}
}
