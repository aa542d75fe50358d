package application

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// decodePanoID turns the hex-pair encoded panorama id into its ASCII form,
// e.g. "4142" becomes "AB". Non-printable bytes are rejected.
func decodePanoID(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", fmt.Errorf("empty panorama id")
	}
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid panorama id %q: %w", encoded, err)
	}
	for _, b := range raw {
		if b < 0x20 || b > 0x7e {
			return "", fmt.Errorf("panorama id %q does not decode to printable ASCII", encoded)
		}
	}
	return string(raw), nil
}

// ParseCredentials splits a comma separated key list, trimming whitespace
// and dropping empty entries.
func ParseCredentials(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, credentialSeparator) {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
