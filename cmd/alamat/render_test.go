package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/services"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestPrintParsed(t *testing.T) {
	parsed := models.ParsedAddress{
		Province: models.Field{Value: "DKI JAKARTA", ID: "31", Confidence: 95},
		RT:       models.Field{Value: "003", Confidence: 90},
	}

	var buf bytes.Buffer
	printParsed(&buf, "Jl. Sudirman RT 3, Jakarta", parsed, []string{"Gagal memuat kode pos"})

	out := buf.String()
	assert.Contains(t, out, "DKI JAKARTA")
	assert.Contains(t, out, " 95% high")
	assert.Contains(t, out, " 90% high")
	assert.Contains(t, out, "unresolved")
	assert.Contains(t, out, "Gagal memuat kode pos")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	assert.Contains(t, buf.String(), "Riwayat kosong")

	buf.Reset()
	printHistory(&buf, []models.HistoryEntry{{
		ID:         "a",
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
		RawAddress: "Jl. Kebon Sirih 1",
		Parsed: models.ParsedAddress{
			Village:  models.Field{Value: "GONDANGDIA", Confidence: 85},
			Province: models.Field{Value: "DKI JAKARTA", Confidence: 95},
		},
	}})
	assert.Contains(t, buf.String(), "Jl. Kebon Sirih 1")
	assert.Contains(t, buf.String(), "GONDANGDIA, DKI JAKARTA")
}

func TestPrintSeedResult(t *testing.T) {
	var buf bytes.Buffer
	printSeedResult(&buf, &services.SeedResult{
		UnitsProcessed: 10,
		ListsFetched:   4,
		UnitsPerLevel:  map[string]int{"province": 1, "regency": 2, "district": 3, "village": 4},
	})
	assert.Contains(t, buf.String(), "Unit diproses : 10")
	assert.Contains(t, buf.String(), "village    4")
}
