package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/alamat-parser/app/models"
)

// ExportFile hasil ekspor CSV
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// exportRow label dan field yang diekspor
type exportRow struct {
	label string
	field func(models.ParsedAddress) models.Field
}

var exportRows = []exportRow{
	{"Provinsi", func(p models.ParsedAddress) models.Field { return p.Province }},
	{"Kota/Kabupaten", func(p models.ParsedAddress) models.Field { return p.Regency }},
	{"Kecamatan", func(p models.ParsedAddress) models.Field { return p.District }},
	{"Kelurahan/Desa", func(p models.ParsedAddress) models.Field { return p.Village }},
	{"Kode Pos", func(p models.ParsedAddress) models.Field { return p.PostalCode }},
	{"Jalan/Nomor", func(p models.ParsedAddress) models.Field { return p.Street }},
	{"RT", func(p models.ParsedAddress) models.Field { return p.RT }},
	{"RW", func(p models.ParsedAddress) models.Field { return p.RW }},
}

// ExportService membuat dokumen CSV dari hasil parse
type ExportService struct {
	now func() time.Time
}

// NewExportService membuat ExportService
func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// Export CSV Field,Value,Confidence. Ditolak jika provinsi belum ter-resolve.
func (es *ExportService) Export(rawAddress string, parsed models.ParsedAddress) (ExportFile, error) {
	if parsed.Province.Value == "" {
		return ExportFile{}, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Field", "Value", "Confidence"},
		{"Alamat Lengkap", rawAddress, ""},
	}
	for _, row := range exportRows {
		f := row.field(parsed)
		records = append(records, []string{row.label, f.Value, confidenceCell(f.Confidence)})
	}

	if err := w.WriteAll(records); err != nil {
		return ExportFile{}, fmt.Errorf("gagal menulis CSV: %w", err)
	}

	return ExportFile{
		Filename:    fmt.Sprintf("alamat_%d.csv", es.now().UnixMilli()),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func confidenceCell(confidence int) string {
	if confidence <= 0 {
		return ""
	}
	return strconv.Itoa(confidence)
}
