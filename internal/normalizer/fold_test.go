package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_ASCIIOnlyLowercases(t *testing.T) {
	in := "Jl. Sudirman No. 123, Menteng, DKI Jakarta 10310"
	out := Fold(in)
	assert.Equal(t, "jl. sudirman no. 123, menteng, dki jakarta 10310", out)
	assert.Len(t, out, len(in))
}

func TestFold_NonASCII(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "diacritics", input: "Jawa Barât", want: "jawa barat"},
		{name: "no-break space", input: "Kota\u00a0Bandung", want: "kota bandung"},
		{name: "full-width digits", input: "ＲＴ ０５", want: "rt 05"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Fold(tc.input))
		})
	}
}

func TestLoadRulesConfig(t *testing.T) {
	cfg, err := LoadRulesConfig()
	require.NoError(t, err)

	assert.Contains(t, cfg.StreetStopWords, "kelurahan")
	assert.Contains(t, cfg.StreetStopWords, "jawa")
	assert.Len(t, cfg.StreetStopWords, 11)
	assert.Equal(t, 3, cfg.MinAdminWordLength)
}
