package sbase

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// IsValidSId checks the SId syntax: a letter or underscore followed by letters,
// digits or underscores.
func IsValidSId(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// IsValidMetaID checks the XML ID syntax used by metaid.
func IsValidMetaID(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == ':' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)):
		default:
			return false
		}
	}
	return true
}

// ParseSBOTerm accepts "SBO:nnnnnnn".
func ParseSBOTerm(s string) (int, bool) {
	if !strings.HasPrefix(s, "SBO:") || len(s) != 11 {
		return 0, false
	}
	n, err := strconv.Atoi(s[4:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatSBOTerm renders n as "SBO:nnnnnnn".
func FormatSBOTerm(n int) string { return fmt.Sprintf("SBO:%07d", n) }
