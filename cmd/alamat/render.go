package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/services"
	"github.com/alamat-parser/internal/parser"
	"github.com/fatih/color"
)

var gradeColors = map[string]*color.Color{
	"green":  color.New(color.FgGreen),
	"yellow": color.New(color.FgYellow),
	"red":    color.New(color.FgRed),
	"grey":   color.New(color.FgHiBlack),
}

var (
	headerColor  = color.New(color.FgWhite, color.Bold)
	messageColor = color.New(color.FgCyan)
)

var fieldLabels = []struct {
	label string
	name  string
}{
	{"Provinsi", models.FieldProvince},
	{"Kota/Kabupaten", models.FieldRegency},
	{"Kecamatan", models.FieldDistrict},
	{"Kelurahan/Desa", models.FieldVillage},
	{"Kode Pos", models.FieldPostalCode},
	{"Jalan/Nomor", models.FieldStreet},
	{"RT", models.FieldRT},
	{"RW", models.FieldRW},
}

func printParsed(w io.Writer, address string, parsed models.ParsedAddress, messages []string) {
	headerColor.Fprintln(w, address)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, fl := range fieldLabels {
		field, _ := parsed.Lookup(fl.name)
		value := field.Value
		if value == "" {
			value = "-"
		}
		grade := parser.GradeOf(field.Confidence)
		c := gradeColors[grade.Color()]
		fmt.Fprintf(w, "%-16s %-36s ", fl.label, value)
		if field.Confidence > 0 {
			c.Fprintf(w, "%3d%% %s\n", field.Confidence, grade)
		} else {
			c.Fprintln(w, string(grade))
		}
	}

	for _, m := range messages {
		printMessage(w, m)
	}
}

func printMessage(w io.Writer, message string) {
	messageColor.Fprintln(w, message)
}

func printHistory(w io.Writer, entries []models.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Riwayat kosong")
		return
	}
	for _, entry := range entries {
		headerColor.Fprintf(w, "%s  ", entry.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintln(w, entry.RawAddress)
		fmt.Fprintf(w, "    %s\n", summary(entry.Parsed))
	}
}

// summary satu baris wilayah yang ter-resolve, dari kelurahan ke provinsi
func summary(p models.ParsedAddress) string {
	var parts []string
	for _, f := range []models.Field{p.Village, p.District, p.Regency, p.Province, p.PostalCode} {
		if f.Value != "" {
			parts = append(parts, f.Value)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func printSeedResult(w io.Writer, result *services.SeedResult) {
	headerColor.Fprintln(w, "Seeding selesai")
	fmt.Fprintf(w, "Unit diproses : %d\n", result.UnitsProcessed)
	fmt.Fprintf(w, "List di-fetch : %d\n", result.ListsFetched)
	for _, level := range []models.Level{models.LevelProvince, models.LevelRegency, models.LevelDistrict, models.LevelVillage} {
		fmt.Fprintf(w, "  %-10s %d\n", level, result.UnitsPerLevel[level.String()])
	}
	fmt.Fprintf(w, "Waktu         : %dms\n", result.ProcessingTimeMs)
}
