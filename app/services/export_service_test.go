package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_Export(t *testing.T) {
	es := NewExportService()
	es.now = func() time.Time { return time.UnixMilli(1717200000000) }

	parsed := models.ParsedAddress{
		Province:   models.Field{Value: "DKI JAKARTA", ID: "31", Confidence: 95},
		Regency:    models.Field{Value: "KOTA JAKARTA PUSAT", ID: "3173", Confidence: 85},
		PostalCode: models.Field{Value: "10310", Confidence: 100},
		Street:     models.Field{Value: "Jl. Sudirman No. 123, Blok \"A\"", Confidence: 80},
	}

	file, err := es.Export("Jl. Sudirman No. 123, Menteng", parsed)
	require.NoError(t, err)
	assert.Equal(t, "alamat_1717200000000.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")

	records, err := csv.NewReader(strings.NewReader(string(file.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 10)
	assert.Equal(t, []string{"Field", "Value", "Confidence"}, records[0])
	assert.Equal(t, []string{"Alamat Lengkap", "Jl. Sudirman No. 123, Menteng", ""}, records[1])
	assert.Equal(t, []string{"Provinsi", "DKI JAKARTA", "95"}, records[2])
	assert.Equal(t, []string{"Kecamatan", "", ""}, records[4])
	assert.Equal(t, []string{"Kode Pos", "10310", "100"}, records[6])
	assert.Equal(t, []string{"Jalan/Nomor", "Jl. Sudirman No. 123, Blok \"A\"", "80"}, records[7])
	assert.Equal(t, []string{"RW", "", ""}, records[9])
}

func TestExportService_RequiresProvince(t *testing.T) {
	_, err := NewExportService().Export("Jl. Tanpa Provinsi No. 1", models.ParsedAddress{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}
