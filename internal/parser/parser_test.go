package parser

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/postal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCatalog katalog in-memory yang mencatat jumlah panggilan per level
type fakeCatalog struct {
	mu       sync.Mutex
	children map[string][]models.AdministrativeUnit
	failOn   models.Level
	calls    map[models.Level]int
}

func newFakeCatalog() *fakeCatalog {
	unit := func(id, name, parent string, level models.Level) models.AdministrativeUnit {
		return models.AdministrativeUnit{ID: id, Name: name, ParentID: parent, Level: level}
	}
	return &fakeCatalog{
		calls: map[models.Level]int{},
		children: map[string][]models.AdministrativeUnit{
			"": {
				unit("31", "DKI JAKARTA", "", models.LevelProvince),
				unit("32", "JAWA BARAT", "", models.LevelProvince),
			},
			"31": {
				unit("3171", "KOTA JAKARTA SELATAN", "31", models.LevelRegency),
				unit("3173", "KOTA JAKARTA PUSAT", "31", models.LevelRegency),
			},
			"32": {
				unit("3204", "KABUPATEN BANDUNG", "32", models.LevelRegency),
				unit("3273", "KOTA BANDUNG", "32", models.LevelRegency),
			},
			"3173": {
				unit("3173010", "GAMBIR", "3173", models.LevelDistrict),
				unit("3173060", "MENTENG", "3173", models.LevelDistrict),
			},
			"3173060": {
				unit("3173060001", "MENTENG", "3173060", models.LevelVillage),
				unit("3173060002", "PEGANGSAAN", "3173060", models.LevelVillage),
			},
		},
	}
}

func (f *fakeCatalog) list(level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[level]++
	if f.failOn == level {
		return nil, errors.New("provider down")
	}
	return f.children[parentID], nil
}

func (f *fakeCatalog) Provinces(_ context.Context) ([]models.AdministrativeUnit, error) {
	return f.list(models.LevelProvince, "")
}

func (f *fakeCatalog) Regencies(_ context.Context, id string) ([]models.AdministrativeUnit, error) {
	return f.list(models.LevelRegency, id)
}

func (f *fakeCatalog) Districts(_ context.Context, id string) ([]models.AdministrativeUnit, error) {
	return f.list(models.LevelDistrict, id)
}

func (f *fakeCatalog) Villages(_ context.Context, id string) ([]models.AdministrativeUnit, error) {
	return f.list(models.LevelVillage, id)
}

type fakePostal struct {
	match   postal.Match
	err     error
	village string
	calls   int
}

func (f *fakePostal) Resolve(_ context.Context, village, _ string) (postal.Match, error) {
	f.calls++
	f.village = village
	return f.match, f.err
}

func newTestParser(c CatalogReader, p PostalResolver) *AddressParser {
	return NewAddressParser(c, p, DefaultMinLength, zap.NewNop())
}

func TestParse_FullCascade(t *testing.T) {
	cat := newFakeCatalog()
	pc := &fakePostal{match: postal.Match{Code: "10310", Confidence: postal.ConfidenceExact}}
	p := newTestParser(cat, pc)

	res, err := p.Parse(context.Background(), "Jl. Sudirman No. 123 RT 5 RW 2, Menteng, Jakarta Pusat, DKI Jakarta")
	require.NoError(t, err)
	a := res.Address

	assert.Equal(t, models.Field{Value: "DKI JAKARTA", ID: "31", Confidence: ConfidenceProvince}, a.Province)
	assert.Equal(t, models.Field{Value: "KOTA JAKARTA PUSAT", ID: "3173", Confidence: ConfidenceRegencyWeak}, a.Regency)
	assert.Equal(t, models.Field{Value: "MENTENG", ID: "3173060", Confidence: ConfidenceDistrict}, a.District)
	assert.Equal(t, models.Field{Value: "MENTENG", ID: "3173060001", Confidence: ConfidenceVillage}, a.Village)
	assert.Equal(t, models.Field{Value: "10310", Confidence: postal.ConfidenceExact}, a.PostalCode)
	assert.Equal(t, models.Field{Value: "005", Confidence: ConfidenceBlockNumber}, a.RT)
	assert.Equal(t, models.Field{Value: "002", Confidence: ConfidenceBlockNumber}, a.RW)
	assert.Equal(t, models.Field{Value: "Jl. Sudirman No. 123", Confidence: ConfidenceStreet}, a.Street)
	assert.Equal(t, "MENTENG", pc.village)
	assert.Empty(t, res.Messages)
}

func TestParse_LiteralPostalCodeWins(t *testing.T) {
	pc := &fakePostal{match: postal.Match{Code: "99999", Confidence: postal.ConfidenceFallback}}
	p := newTestParser(newFakeCatalog(), pc)

	res, err := p.Parse(context.Background(), "Jl. Sudirman No. 123, Menteng, Jakarta Pusat, DKI Jakarta 10310")

	require.NoError(t, err)
	assert.Equal(t, 1, pc.calls)
	assert.Equal(t, models.Field{Value: "10310", Confidence: ConfidencePostalLiteral}, res.Address.PostalCode)
}

func TestParse_RegencyDisambiguation(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		wantID   string
		wantConf int
	}{
		{name: "kota prefix", address: "Jl. Asia Afrika No. 8, Kota Bandung, Jawa Barat", wantID: "3273", wantConf: ConfidenceRegencyStrong},
		{name: "kab. prefix", address: "Jl. Raya Soreang, Kab. Bandung, Jawa Barat", wantID: "3204", wantConf: ConfidenceRegencyStrong},
		{name: "kabupaten prefix", address: "Desa Cingcin, Kabupaten Bandung, Jawa Barat", wantID: "3204", wantConf: ConfidenceRegencyStrong},
		{name: "kab. prefix with extra whitespace", address: "Jl. Raya Soreang, Kab.   Bandung, Jawa Barat", wantID: "3204", wantConf: ConfidenceRegencyStrong},
		{name: "kota prefix across line break", address: "Jl. Asia Afrika No. 8, Kota\nBandung, Jawa Barat", wantID: "3273", wantConf: ConfidenceRegencyStrong},
		{name: "bare name is weak, first in catalog order", address: "Jl. Braga No. 1, Bandung, Jawa Barat", wantID: "3204", wantConf: ConfidenceRegencyWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(newFakeCatalog(), nil)
			res, err := p.Parse(context.Background(), tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.Address.Regency.ID)
			assert.Equal(t, tt.wantConf, res.Address.Regency.Confidence)
		})
	}
}

func TestParse_ProvinceNotFoundShortCircuits(t *testing.T) {
	cat := newFakeCatalog()
	p := newTestParser(cat, &fakePostal{})

	res, err := p.Parse(context.Background(), "Jl. Malioboro No. 52, Yogyakarta")

	require.NoError(t, err)
	assert.False(t, res.Address.Province.IsResolved())
	assert.Equal(t, 1, cat.calls[models.LevelProvince])
	assert.Zero(t, cat.calls[models.LevelRegency])
	assert.Zero(t, cat.calls[models.LevelDistrict])
	assert.Zero(t, cat.calls[models.LevelVillage])
}

func TestParse_CatalogFailureKeepsHigherLevels(t *testing.T) {
	cat := newFakeCatalog()
	cat.failOn = models.LevelDistrict
	p := newTestParser(cat, nil)

	res, err := p.Parse(context.Background(), "Jl. Sudirman No. 123, Menteng, Jakarta Pusat, DKI Jakarta")

	require.NoError(t, err)
	assert.Equal(t, "31", res.Address.Province.ID)
	assert.Equal(t, "3173", res.Address.Regency.ID)
	assert.False(t, res.Address.District.IsResolved())
	assert.Zero(t, cat.calls[models.LevelVillage])
	assert.Equal(t, []string{"Gagal memuat data kecamatan"}, res.Messages)
}

func TestParse_PostalFailureIsMessage(t *testing.T) {
	p := newTestParser(newFakeCatalog(), &fakePostal{err: errors.New("timeout")})

	res, err := p.Parse(context.Background(), "Jl. Sudirman No. 123, Menteng, Jakarta Pusat, DKI Jakarta")

	require.NoError(t, err)
	assert.False(t, res.Address.PostalCode.IsResolved())
	assert.Equal(t, []string{MessagePostalFailed}, res.Messages)
}

func TestParse_TooShort(t *testing.T) {
	p := newTestParser(newFakeCatalog(), nil)

	_, err := p.Parse(context.Background(), "  Jl. A  ")

	assert.ErrorIs(t, err, ErrAddressTooShort)
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cat := newFakeCatalog()
	cat.failOn = models.LevelProvince
	p := newTestParser(cat, nil)

	_, err := p.Parse(ctx, "Jl. Sudirman No. 123, DKI Jakarta")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractRTRW(t *testing.T) {
	tests := []struct {
		input  string
		rt, rw string
	}{
		{input: "Jl. Mawar RT/RW 010/002 Kel. Melati", rt: "010", rw: "002"},
		{input: "Gg. Kenari RTRW 1 12", rt: "001", rw: "012"},
		{input: "rt/rw: 03/04", rt: "003", rw: "004"},
		{input: "Jl. Kenanga RT. 5 RW 2", rt: "005", rw: "002"},
		{input: "Blok C RW 07", rt: "", rw: "007"},
		{input: "Jl. Sudirman No. 123", rt: "", rw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rt, rw := ExtractRTRW(tt.input)
			assert.Equal(t, tt.rt, rt)
			assert.Equal(t, tt.rw, rw)
		})
	}
}

func TestPadBlockNumber(t *testing.T) {
	assert.Equal(t, "005", PadBlockNumber("5"))
	assert.Equal(t, "012", PadBlockNumber("12"))
	assert.Equal(t, "123", PadBlockNumber("123"))
	assert.Equal(t, "0005", PadBlockNumber("0005"))
	assert.Equal(t, "A1", PadBlockNumber("A1"))
	assert.Equal(t, "", PadBlockNumber(""))
}

func TestExtractStreet(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		village  string
		district string
		want     string
	}{
		{
			name:    "stops at village",
			address: "Jl. Sudirman No. 123, Menteng, Jakarta Pusat, DKI Jakarta 10310",
			village: "MENTENG",
			want:    "Jl. Sudirman No. 123",
		},
		{
			name:     "stops at district",
			address:  "Jl. Braga No. 10 Sumurbandung Kota Bandung",
			district: "SUMUR BANDUNG",
			want:     "Jl. Braga No. 10",
		},
		{
			name:    "stops at rt marker",
			address: "Gg. Haji Ali No. 5 RT.003 RW.004",
			want:    "Gg. Haji Ali No. 5",
		},
		{
			name:    "stops at prefixed keyword",
			address: "Jl. Merdeka 45, Kel. Gambir, Kec. Gambir",
			want:    "Jl. Merdeka 45",
		},
		{
			name:    "stops at dki",
			address: "Jl. Thamrin 1 DKI Jakarta",
			want:    "Jl. Thamrin 1",
		},
		{
			name:    "first token is keyword",
			address: "Kelurahan Menteng Jakarta",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStreet(tt.address, tt.village, tt.district))
		})
	}
}

func TestGradeOf(t *testing.T) {
	assert.Equal(t, GradeUnresolved, GradeOf(0))
	assert.Equal(t, GradeLow, GradeOf(50))
	assert.Equal(t, GradeMedium, GradeOf(70))
	assert.Equal(t, GradeMedium, GradeOf(85))
	assert.Equal(t, GradeHigh, GradeOf(90))
	assert.Equal(t, GradeHigh, GradeOf(100))
	assert.Equal(t, "green", GradeHigh.Color())
	assert.Equal(t, "grey", GradeUnresolved.Color())
}
