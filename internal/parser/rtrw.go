package parser

import (
	"regexp"
	"strings"
)

var (
	// RT/RW 010/002, RTRW 10 2, rt/rw: 01/02
	rtrwCombinedRegex = regexp.MustCompile(`(?i)(?:RT\s*/?\s*RW|RT\s*RW)[\s.:]*0*(\d{1,3})[\s/]*0*(\d{1,3})`)
	rtRegex           = regexp.MustCompile(`(?i)RT[\s.:]*0*(\d{1,3})`)
	rwRegex           = regexp.MustCompile(`(?i)RW[\s.:]*0*(\d{1,3})`)
)

// ExtractRTRW mengambil nomor RT dan RW dari alamat, di-pad 3 digit.
// String kosong jika tidak ditemukan.
func ExtractRTRW(address string) (rt, rw string) {
	if m := rtrwCombinedRegex.FindStringSubmatch(address); m != nil {
		return PadBlockNumber(m[1]), PadBlockNumber(m[2])
	}

	if m := rtRegex.FindStringSubmatch(address); m != nil {
		rt = PadBlockNumber(m[1])
	}
	if m := rwRegex.FindStringSubmatch(address); m != nil {
		rw = PadBlockNumber(m[1])
	}
	return rt, rw
}

// PadBlockNumber pad angka RT/RW jadi 3 digit. Nilai non-angka dikembalikan apa adanya.
func PadBlockNumber(value string) string {
	if value == "" || len(value) >= 3 {
		return value
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return value
		}
	}
	return strings.Repeat("0", 3-len(value)) + value
}
