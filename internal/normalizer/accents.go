package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics membuang tanda diakritik (é → e) dengan aman
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn cek apakah rune adalah diacritic mark
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Fold melipat teks ke ASCII lower-case untuk pencocokan substring.
// Karakter ASCII tidak berubah, jadi posisi token ASCII tetap sama.
func Fold(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}
	// NFKC dulu supaya digit full-width dan ligature jadi bentuk biasa
	s = norm.NFKC.String(s)
	return strings.ToLower(unidecode.Unidecode(StripDiacritics(s)))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
