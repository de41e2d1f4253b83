package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ParsePixKeyType(s string) (PixKeyType, bool) {
	t := PixKeyType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case PixKeyEmail, PixKeyCPF, PixKeyCNPJ, PixKeyPhone:
		return t, true
	}
	return "", false
}

func ValidPixKey(key string, keyType PixKeyType) bool {
	switch keyType {
	case PixKeyEmail:
		return emailPattern.MatchString(key)
	case PixKeyCPF:
		return len(OnlyDigits(key)) == 11
	case PixKeyCNPJ:
		return len(OnlyDigits(key)) == 14
	case PixKeyPhone:
		n := len(OnlyDigits(key))
		return n == 10 || n == 11
	}
	return false
}

// FormatPixKey returns the canonical form providers expect.
func FormatPixKey(key string, keyType PixKeyType) string {
	switch keyType {
	case PixKeyCPF, PixKeyCNPJ, PixKeyPhone:
		return OnlyDigits(key)
	case PixKeyEmail:
		return strings.ToLower(strings.TrimSpace(key))
	}
	return key
}
