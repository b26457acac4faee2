package services

import "errors"

var (
	// ErrSessionNotFound session tidak ada atau sudah kedaluwarsa
	ErrSessionNotFound = errors.New("session tidak ditemukan")
	// ErrUnitNotFound id wilayah tidak ada di list yang di-scope pilihan saat ini
	ErrUnitNotFound = errors.New("wilayah tidak ditemukan")
	// ErrNothingToExport belum ada provinsi yang ter-resolve
	ErrNothingToExport = errors.New("tidak ada data untuk diekspor")
	// ErrHistoryNotFound entri riwayat tidak ada
	ErrHistoryNotFound = errors.New("riwayat tidak ditemukan")
	// ErrUnknownField nama field tidak bisa diisi manual
	ErrUnknownField = errors.New("field tidak dikenal")
	// ErrEmptyAddress alamat kosong
	ErrEmptyAddress = errors.New("alamat tidak boleh kosong")
	// ErrSelectionChanged session berubah selama override berjalan
	ErrSelectionChanged = errors.New("pilihan wilayah berubah, ulangi pilihan")
)
