package utils

import (
	"errors"
	"regexp"
	"strings"
)

var phoneDigits = regexp.MustCompile(`^[0-9]{9,15}$`)

// NormalizePhone canonicalizes an Indonesian mobile number to its 62-prefixed
// form: "081234567890", "81234567890" and "6281234567890" all become
// "6281234567890". Spaces, dashes and a leading "+" are tolerated.
func NormalizePhone(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")

	if s == "" {
		return "", errors.New("phone number is required")
	}

	local := s
	switch {
	case strings.HasPrefix(s, "62"):
		local = s[2:]
	case strings.HasPrefix(s, "0"):
		local = s[1:]
	}

	if !phoneDigits.MatchString(local) {
		return "", errors.New("phone number must be 9-15 digits")
	}

	return "62" + local, nil
}
