package rider

import "strings"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidID(id int64) bool {
	return id > 0
}
