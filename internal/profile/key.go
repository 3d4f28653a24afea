// File: internal/profile/key.go
package profile

import "strings"

const (
	// KeyWidth is the length of every profile key.
	KeyWidth = 24
	// KeyPadChar fills user ids shorter than KeyWidth.
	KeyPadChar = '0'
)

// DeriveKey maps a user id to its fixed-width profile key: right-padded with
// KeyPadChar, truncated when longer than KeyWidth. Every read and write path
// must address profiles through this function.
//
// Widths are counted in bytes. userID is expected to be ASCII digits, which the
// snowflake binding on every request enforces; other input could be cut mid-rune.
func DeriveKey(userID string) string {
	if len(userID) >= KeyWidth {
		return userID[:KeyWidth]
	}
	return userID + strings.Repeat(string(KeyPadChar), KeyWidth-len(userID))
}
