package responses

import (
	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/app/services"
	"github.com/alamat-parser/internal/parser"
)

// ErrorResponse response error standar
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FieldResponse satu field hasil parse dengan grade confidence
type FieldResponse struct {
	Value      string       `json:"value"`
	ID         string       `json:"id,omitempty"`
	Confidence int          `json:"confidence"`
	Grade      parser.Grade `json:"grade"`
	Color      string       `json:"color"`
}

// ParsedAddressResponse hasil parse per field
type ParsedAddressResponse struct {
	Province   FieldResponse `json:"province"`
	Regency    FieldResponse `json:"regency"`
	District   FieldResponse `json:"district"`
	Village    FieldResponse `json:"village"`
	PostalCode FieldResponse `json:"postal_code"`
	Street     FieldResponse `json:"street"`
	RT         FieldResponse `json:"rt"`
	RW         FieldResponse `json:"rw"`
}

// ParseAddressResponse response parse satu alamat
type ParseAddressResponse struct {
	Address          string                `json:"address"`
	Parsed           ParsedAddressResponse `json:"parsed"`
	Messages         []string              `json:"messages,omitempty"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
}

// BatchItemResponse hasil satu alamat dalam batch
type BatchItemResponse struct {
	Address  string                 `json:"address"`
	Parsed   *ParsedAddressResponse `json:"parsed,omitempty"`
	Messages []string               `json:"messages,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// BatchParseResponse response parse banyak alamat
type BatchParseResponse struct {
	Results          []BatchItemResponse `json:"results"`
	Total            int                 `json:"total"`
	Failed           int                 `json:"failed"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
}

// SessionResponse snapshot session
type SessionResponse struct {
	ID      string                 `json:"id"`
	Input   string                 `json:"input"`
	Parsed  ParsedAddressResponse  `json:"parsed"`
	Status  string                 `json:"status,omitempty"`
	Parsing bool                   `json:"parsing"`
	Options services.SessionOptions `json:"options"`
}

// SaveResponse hasil simpan ke riwayat
type SaveResponse struct {
	Entry   models.HistoryEntry `json:"entry"`
	Message string              `json:"message"`
}

// HistoryListResponse daftar riwayat
type HistoryListResponse struct {
	Entries []models.HistoryEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// UnitListResponse daftar wilayah
type UnitListResponse struct {
	Level    string                      `json:"level"`
	ParentID string                      `json:"parent_id,omitempty"`
	Units    []models.AdministrativeUnit `json:"units"`
}

// NewFieldResponse membangun FieldResponse dari Field
func NewFieldResponse(f models.Field) FieldResponse {
	grade := parser.GradeOf(f.Confidence)
	return FieldResponse{
		Value:      f.Value,
		ID:         f.ID,
		Confidence: f.Confidence,
		Grade:      grade,
		Color:      grade.Color(),
	}
}

// NewParsedAddressResponse membangun ParsedAddressResponse
func NewParsedAddressResponse(p models.ParsedAddress) ParsedAddressResponse {
	return ParsedAddressResponse{
		Province:   NewFieldResponse(p.Province),
		Regency:    NewFieldResponse(p.Regency),
		District:   NewFieldResponse(p.District),
		Village:    NewFieldResponse(p.Village),
		PostalCode: NewFieldResponse(p.PostalCode),
		Street:     NewFieldResponse(p.Street),
		RT:         NewFieldResponse(p.RT),
		RW:         NewFieldResponse(p.RW),
	}
}

// NewSessionResponse membangun SessionResponse dari view
func NewSessionResponse(v services.SessionView) SessionResponse {
	return SessionResponse{
		ID:      v.ID,
		Input:   v.Input,
		Parsed:  NewParsedAddressResponse(v.Parsed),
		Status:  v.Status,
		Parsing: v.Parsing,
		Options: v.Options,
	}
}
