package parser

import (
	"context"
	"strings"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/normalizer"
	"go.uber.org/zap"
)

// CatalogReader sumber list wilayah yang di-scope parent id
type CatalogReader interface {
	Provinces(ctx context.Context) ([]models.AdministrativeUnit, error)
	Regencies(ctx context.Context, provinceID string) ([]models.AdministrativeUnit, error)
	Districts(ctx context.Context, regencyID string) ([]models.AdministrativeUnit, error)
	Villages(ctx context.Context, districtID string) ([]models.AdministrativeUnit, error)
}

// Matcher mencocokkan alamat ke katalog wilayah secara bertingkat:
// provinsi → kabupaten/kota → kecamatan → kelurahan/desa.
// Setiap level hanya dicari di anak dari hasil level sebelumnya.
type Matcher struct {
	catalog CatalogReader
	logger  *zap.Logger
}

// NewMatcher membuat Matcher
func NewMatcher(catalog CatalogReader, logger *zap.Logger) *Matcher {
	return &Matcher{
		catalog: catalog,
		logger:  logger,
	}
}

// Match menjalankan cascade dan mengembalikan field wilayah yang ter-resolve.
// Gagal memuat katalog menghentikan cascade dengan pesan status; error hanya
// dikembalikan jika ctx dibatalkan.
func (m *Matcher) Match(ctx context.Context, address string) (models.ParsedAddress, []string, error) {
	var parsed models.ParsedAddress
	text := normalizer.Fold(address)

	provinces, err := m.catalog.Provinces(ctx)
	if err != nil {
		return m.halt(ctx, parsed, err, models.LevelProvince)
	}
	province, ok := MatchProvince(provinces, text)
	if !ok {
		m.logger.Debug("Provinsi tidak ditemukan", zap.Int("provinces", len(provinces)))
		return parsed, nil, nil
	}
	parsed.Province = models.UnitField(province, ConfidenceProvince)

	regencies, err := m.catalog.Regencies(ctx, province.ID)
	if err != nil {
		return m.halt(ctx, parsed, err, models.LevelRegency)
	}
	regency, confidence, ok := MatchRegency(regencies, text)
	if !ok {
		return parsed, nil, nil
	}
	parsed.Regency = models.UnitField(regency, confidence)

	districts, err := m.catalog.Districts(ctx, regency.ID)
	if err != nil {
		return m.halt(ctx, parsed, err, models.LevelDistrict)
	}
	district, ok := MatchByName(districts, text)
	if !ok {
		return parsed, nil, nil
	}
	parsed.District = models.UnitField(district, ConfidenceDistrict)

	villages, err := m.catalog.Villages(ctx, district.ID)
	if err != nil {
		return m.halt(ctx, parsed, err, models.LevelVillage)
	}
	village, ok := MatchByName(villages, text)
	if !ok {
		return parsed, nil, nil
	}
	parsed.Village = models.UnitField(village, ConfidenceVillage)

	return parsed, nil, nil
}

// halt menghentikan cascade dengan hasil sejauh ini. Error katalog jadi pesan status,
// kecuali ctx sudah dibatalkan.
func (m *Matcher) halt(ctx context.Context, parsed models.ParsedAddress, err error, level models.Level) (models.ParsedAddress, []string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return parsed, nil, ctxErr
	}
	m.logger.Warn("Cascade berhenti, katalog gagal dimuat",
		zap.String("level", level.String()),
		zap.Error(err))
	return parsed, []string{catalog.FailureMessage(level)}, nil
}

// MatchProvince provinsi pertama (urutan katalog) yang namanya muncul di text
func MatchProvince(provinces []models.AdministrativeUnit, text string) (models.AdministrativeUnit, bool) {
	return MatchByName(provinces, text)
}

// MatchByName unit pertama yang nama lengkapnya muncul di text (text sudah di-Fold)
func MatchByName(units []models.AdministrativeUnit, text string) (models.AdministrativeUnit, bool) {
	for _, u := range units {
		name := normalizer.Fold(u.Name)
		if name != "" && strings.Contains(text, name) {
			return u, true
		}
	}
	return models.AdministrativeUnit{}, false
}

// Prefix penulisan kabupaten/kota di alamat (sudah di-Fold)
var (
	kabupatenPrefixes = []string{"kabupaten ", "kab. ", "kab "}
	kotaPrefixes      = []string{"kota "}
)

// MatchRegency membedakan "Kota X" dan "Kabupaten X".
// Match dengan prefix (kabupaten/kab./kota + nama) langsung dipilih dengan confidence 95;
// jika tidak ada, kabupaten/kota pertama yang nama tanpa prefix-nya muncul dipilih dengan confidence 85.
func MatchRegency(regencies []models.AdministrativeUnit, text string) (models.AdministrativeUnit, int, bool) {
	var weak models.AdministrativeUnit
	weakFound := false
	compact := strings.Join(strings.Fields(text), " ")

	for _, reg := range regencies {
		bare := normalizer.Fold(reg.BareName())
		if bare == "" {
			continue
		}

		if hasPrefixedName(compact, regencyPrefixes(reg), bare) {
			return reg, ConfidenceRegencyStrong, true
		}

		if !weakFound && strings.Contains(text, bare) {
			weak = reg
			weakFound = true
		}
	}

	if weakFound {
		return weak, ConfidenceRegencyWeak, true
	}
	return models.AdministrativeUnit{}, 0, false
}

func regencyPrefixes(reg models.AdministrativeUnit) []string {
	if reg.IsKabupaten() {
		return kabupatenPrefixes
	}
	return kotaPrefixes
}

func hasPrefixedName(text string, prefixes []string, bare string) bool {
	for _, prefix := range prefixes {
		if strings.Contains(text, prefix+bare) {
			return true
		}
	}
	return false
}
