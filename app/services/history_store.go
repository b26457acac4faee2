package services

import "context"

// IHistoryStore interface key-value store untuk riwayat alamat.
// Value berupa JSON HistoryEntry.
type IHistoryStore interface {
	// List semua key dengan prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Get value key; found=false jika tidak ada
	Get(ctx context.Context, key string) (string, bool, error)

	// Set menyimpan value tanpa kedaluwarsa
	Set(ctx context.Context, key, value string) error

	// Close menutup koneksi (jika ada)
	Close() error
}
