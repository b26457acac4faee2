package requests

// ParseAddressRequest request parse satu alamat
type ParseAddressRequest struct {
	Address string `json:"address" binding:"required"` // Alamat lengkap
}

// BatchParseRequest request parse banyak alamat
type BatchParseRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1,max=500"` // Maksimal 500 alamat
}

// UpdateInputRequest teks input session (parse di-debounce)
type UpdateInputRequest struct {
	Address string `json:"address"`
}

// OverrideRequest pilihan manual wilayah
type OverrideRequest struct {
	Level string `json:"level" binding:"required"` // province | regency | district | village
	ID    string `json:"id" binding:"required"`
}

// SetFieldRequest isi manual field teks
type SetFieldRequest struct {
	Field string `json:"field" binding:"required"` // postal_code | street | rt | rw
	Value string `json:"value"`
}

// InvalidateCatalogRequest invalidasi cache katalog; level kosong = semua
type InvalidateCatalogRequest struct {
	Level    string `json:"level,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// SeedIndexRequest seeding index Meilisearch
type SeedIndexRequest struct {
	ProvinceID  string `json:"province_id,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`
}
