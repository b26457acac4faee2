package models

import (
	"regexp"
	"strings"
)

// Level tingkat wilayah administrasi: provinsi → kabupaten/kota → kecamatan → kelurahan/desa
type Level int

// Level constants
const (
	LevelProvince Level = 1
	LevelRegency  Level = 2
	LevelDistrict Level = 3
	LevelVillage  Level = 4
)

var levelNames = map[Level]string{
	LevelProvince: "province",
	LevelRegency:  "regency",
	LevelDistrict: "district",
	LevelVillage:  "village",
}

// String nama level dalam bahasa Inggris (dipakai di API & log)
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// IsValid cek apakah level valid
func (l Level) IsValid() bool {
	return l >= LevelProvince && l <= LevelVillage
}

// ParseLevel mengubah nama level ("province", "regency", ...) menjadi Level
func ParseLevel(name string) (Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, n := range levelNames {
		if n == name {
			return level, true
		}
	}
	return 0, false
}

// AdministrativeUnit satu unit wilayah dari katalog referensi.
// ID bersifat opaque; hierarki (ParentID) dijamin oleh katalog, bukan oleh matcher.
type AdministrativeUnit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"` // kosong untuk provinsi
	Level    Level  `json:"level"`
}

// Prefix constants nama unit (tetap dipertahankan di output)
const (
	PrefixKabupaten = "KABUPATEN"
	PrefixKota      = "KOTA"
	PrefixKecamatan = "KECAMATAN"
	PrefixKelurahan = "KELURAHAN"
)

var reRegencyPrefix = regexp.MustCompile(`(?i)^(KABUPATEN|KOTA)\s+`)
var reDistrictPrefix = regexp.MustCompile(`(?i)^KECAMATAN\s+`)

// IsKabupaten true jika nama regency diawali "KABUPATEN"
func (au AdministrativeUnit) IsKabupaten() bool {
	return strings.HasPrefix(strings.ToLower(au.Name), strings.ToLower(PrefixKabupaten))
}

// BareName nama regency tanpa prefix KABUPATEN/KOTA, lower-case
func (au AdministrativeUnit) BareName() string {
	return strings.ToLower(reRegencyPrefix.ReplaceAllString(au.Name, ""))
}

// StripDistrictPrefix membuang prefix "KECAMATAN " dari nama kecamatan, lower-case
func StripDistrictPrefix(name string) string {
	return strings.ToLower(reDistrictPrefix.ReplaceAllString(name, ""))
}

// FindUnit mencari unit berdasarkan ID pada list
func FindUnit(units []AdministrativeUnit, id string) (AdministrativeUnit, bool) {
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}
	return AdministrativeUnit{}, false
}
