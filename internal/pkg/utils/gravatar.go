package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL builds the Gravatar image URL for an email address. Used as
// the avatar fallback for accounts created without a provider picture.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 200
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=mp", hash, size)
}
