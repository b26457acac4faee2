// Package catalog menyediakan katalog referensi wilayah Indonesia
// (provinsi → kabupaten/kota → kecamatan → kelurahan/desa) yang di-scope per parent id.
package catalog

import (
	"context"
	"fmt"

	"github.com/alamat-parser/app/models"
)

// Provider sumber data wilayah. parentID kosong untuk level provinsi.
type Provider interface {
	List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error)
}

// FetchError gagal mengambil list wilayah dari provider
type FetchError struct {
	Level    models.Level
	ParentID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("gagal memuat %s (parent=%q): %v", e.Level, e.ParentID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusMessage pesan status singkat untuk ditampilkan ke user
func (e *FetchError) StatusMessage() string {
	return FailureMessage(e.Level)
}

var loadingMessages = map[models.Level]string{
	models.LevelProvince: "Memuat data provinsi...",
	models.LevelRegency:  "Memuat data kota/kabupaten...",
	models.LevelDistrict: "Memuat data kecamatan...",
	models.LevelVillage:  "Memuat data kelurahan/desa...",
}

var failureMessages = map[models.Level]string{
	models.LevelProvince: "Gagal memuat data provinsi",
	models.LevelRegency:  "Gagal memuat data kota/kabupaten",
	models.LevelDistrict: "Gagal memuat data kecamatan",
	models.LevelVillage:  "Gagal memuat data kelurahan/desa",
}

// LoadingMessage pesan status saat list level sedang dimuat
func LoadingMessage(level models.Level) string {
	return loadingMessages[level]
}

// FailureMessage pesan status saat list level gagal dimuat
func FailureMessage(level models.Level) string {
	if msg, ok := failureMessages[level]; ok {
		return msg
	}
	return "Gagal memuat data wilayah"
}
