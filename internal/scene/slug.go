package scene

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug turns a region name into a filesystem-safe filename stem:
// decomposed accents stripped, lowercased, runs of anything else
// collapsed to single hyphens. "São Paulo" becomes "sao-paulo".
func Slug(name string) string {
	decomposed := norm.NFD.String(name)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark from the decomposition
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return "region"
	}
	return b.String()
}
