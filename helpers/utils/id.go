package utils

import (
	"github.com/google/uuid"
)

// GenerateID membuat ID berbasis waktu (UUIDv7), urut secara leksikografis sesuai waktu pembuatan
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback ke v4 jika v7 gagal
		return uuid.NewString()
	}
	return id.String()
}

// GenerateSessionID membuat ID session parse
func GenerateSessionID() string {
	return uuid.NewString()
}
