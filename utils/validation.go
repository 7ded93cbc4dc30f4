package utils

import "fmt"

// allowedKeyChars is a precomputed boolean array for O(1) character checks
var allowedKeyChars [128]bool

func init() {
	for _, c := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-:.@" {
		allowedKeyChars[c] = true
	}
}

// MaxKeyLength bounds partition keys so state map entries stay small.
const MaxKeyLength = 64

// ValidateKey validates a partition key:
// - 1 to 64 bytes long
// - only alphanumeric ASCII, underscore (_), hyphen (-), colon (:),
//   period (.), and at (@)
func ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("key cannot exceed %d bytes, got %d bytes", MaxKeyLength, len(key))
	}

	const hint = "Only alphanumeric ASCII, underscore (_), hyphen (-), colon (:), period (.), and at (@) are allowed"

	for i, r := range key {
		if r >= 128 || !allowedKeyChars[r] {
			return fmt.Errorf("key contains invalid character '%c' at position %d. %s", r, i, hint)
		}
	}

	return nil
}
