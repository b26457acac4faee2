package parser

import (
	"regexp"
	"strings"

	"github.com/alamat-parser/internal/normalizer"
)

var (
	blockMarkerRegex   = regexp.MustCompile(`^(rt|rw)\.?$`)
	blockNumberRegex   = regexp.MustCompile(`^(rt|rw)\.?\d+$`)
	trailingCommaRegex = regexp.MustCompile(`,\s*$`)
)

// ExtractStreet mengambil bagian jalan/nomor dari awal alamat.
// Token dikumpulkan sampai ketemu token milik kelurahan/kecamatan yang sudah ter-resolve,
// penanda RT/RW, atau kata kunci administratif.
func ExtractStreet(address, villageName, districtName string) string {
	rules := normalizer.MustRules()
	villageWords := significantWords(villageName, rules.MinAdminWordLength)
	districtWords := significantWords(districtName, rules.MinAdminWordLength)

	var street []string
	for _, token := range strings.Fields(address) {
		part := normalizer.Fold(token)

		if containsAny(part, villageWords) || containsAny(part, districtWords) {
			break
		}
		if blockMarkerRegex.MatchString(part) || blockNumberRegex.MatchString(part) {
			break
		}
		if isStopWord(part, rules.StreetStopWords) {
			break
		}

		street = append(street, token)
	}

	if len(street) == 0 {
		return ""
	}
	return trailingCommaRegex.ReplaceAllString(strings.TrimSpace(strings.Join(street, " ")), "")
}

// significantWords kata dari nama wilayah yang lebih panjang dari minLen
func significantWords(name string, minLen int) []string {
	var words []string
	for _, w := range strings.Fields(normalizer.Fold(name)) {
		if len([]rune(w)) > minLen {
			words = append(words, w)
		}
	}
	return words
}

func containsAny(part string, words []string) bool {
	for _, w := range words {
		if strings.Contains(part, w) {
			return true
		}
	}
	return false
}

func isStopWord(part string, stopWords []string) bool {
	for _, sw := range stopWords {
		if part == sw || strings.HasPrefix(part, sw+".") {
			return true
		}
	}
	return false
}
