package mask

import "strings"

// Token hides all but the last 4 characters of a payment token for logging.
// Short tokens are fully masked.
func Token(token string) string {
	cleaned := strings.TrimSpace(token)
	n := len(cleaned)
	if n == 0 {
		return ""
	}
	if n <= 8 {
		return strings.Repeat("*", n)
	}
	return strings.Repeat("*", n-4) + cleaned[n-4:]
}
