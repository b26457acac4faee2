package postal

import (
	"context"
	"strings"

	"github.com/alamat-parser/app/models"
	"go.uber.org/zap"
)

// Confidence hasil resolusi
const (
	ConfidenceExact    = 90
	ConfidenceFallback = 70
)

// Searcher sumber kandidat kode pos
type Searcher interface {
	Search(ctx context.Context, name string) ([]Candidate, error)
}

// Match kode pos terpilih. Code kosong berarti tidak ada kandidat.
type Match struct {
	Code        string `json:"code"`
	Urban       string `json:"urban,omitempty"`
	Subdistrict string `json:"subdistrict,omitempty"`
	Confidence  int    `json:"confidence"`
}

// Found true jika ada kode pos terpilih
func (m Match) Found() bool {
	return m.Code != ""
}

// Resolver memilih kode pos dari kandidat hasil pencarian nama kelurahan
type Resolver struct {
	searcher Searcher
	logger   *zap.Logger
}

// NewResolver membuat Resolver
func NewResolver(searcher Searcher, logger *zap.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		logger:   logger,
	}
}

// Resolve mencari kode pos kelurahan/desa; districtName opsional untuk menyaring kandidat
func (r *Resolver) Resolve(ctx context.Context, villageName, districtName string) (Match, error) {
	if strings.TrimSpace(villageName) == "" {
		return Match{}, nil
	}

	candidates, err := r.searcher.Search(ctx, villageName)
	if err != nil {
		return Match{}, err
	}

	match := Select(candidates, villageName, districtName)
	r.logger.Debug("Kode pos di-resolve",
		zap.String("village", villageName),
		zap.String("district", districtName),
		zap.Int("candidates", len(candidates)),
		zap.String("postal_code", match.Code),
		zap.Int("confidence", match.Confidence))
	return match, nil
}

// Select memilih kandidat: nama kelurahan sama persis (dan kecamatan cocok jika diberikan)
// dapat confidence 90, selain itu kandidat pertama dengan confidence 70.
func Select(candidates []Candidate, villageName, districtName string) Match {
	if len(candidates) == 0 {
		return Match{}
	}

	target := strings.ToLower(villageName)
	district := models.StripDistrictPrefix(strings.TrimSpace(districtName))

	for _, c := range candidates {
		if strings.ToLower(c.Urban) != target {
			continue
		}
		if district != "" && !strings.Contains(strings.ToLower(c.Subdistrict), district) {
			continue
		}
		return c.toMatch(ConfidenceExact)
	}

	return candidates[0].toMatch(ConfidenceFallback)
}

func (c Candidate) toMatch(confidence int) Match {
	if c.PostalCode == "" {
		return Match{}
	}
	return Match{
		Code:        string(c.PostalCode),
		Urban:       c.Urban,
		Subdistrict: c.Subdistrict,
		Confidence:  confidence,
	}
}
