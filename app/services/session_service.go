package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/helpers/utils"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Default session
const (
	DefaultDebounceMinLength = 15
	DefaultDebounceQuiet     = 1500 * time.Millisecond
	DefaultMaxSessions       = 1000
)

// SessionConfig konfigurasi SessionService
type SessionConfig struct {
	DebounceMinLength int
	DebounceQuiet     time.Duration
	MaxSessions       int
}

// SessionOptions pilihan dropdown yang di-scope pilihan saat ini
type SessionOptions struct {
	Regencies []models.AdministrativeUnit `json:"regencies"`
	Districts []models.AdministrativeUnit `json:"districts"`
	Villages  []models.AdministrativeUnit `json:"villages"`
}

// SessionView snapshot session
type SessionView struct {
	ID        string               `json:"id"`
	Input     string               `json:"input"`
	Parsed    models.ParsedAddress `json:"parsed"`
	Status    string               `json:"status,omitempty"`
	Parsing   bool                 `json:"parsing"`
	Options   SessionOptions       `json:"options"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// session state satu form input alamat
type session struct {
	id string

	mu         sync.Mutex
	input      string
	parsed     models.ParsedAddress
	status     string
	parsing    bool
	options    SessionOptions
	updatedAt  time.Time
	generation uint64
	cancel     context.CancelFunc
	timer      *time.Timer
}

// SessionService mengelola session parse: debounce input, parse yang bisa dibatalkan,
// override manual, riwayat dan ekspor.
type SessionService struct {
	parser   *parser.AddressParser
	catalog  *catalog.Catalog
	history  *HistoryService
	exporter *ExportService
	sessions *lru.Cache[string, *session]
	config   SessionConfig
	logger   *zap.Logger

	baseCtx context.Context
	stop    context.CancelFunc
}

// NewSessionService membuat SessionService
func NewSessionService(p *parser.AddressParser, c *catalog.Catalog, history *HistoryService, exporter *ExportService, config SessionConfig, logger *zap.Logger) (*SessionService, error) {
	if config.DebounceMinLength <= 0 {
		config.DebounceMinLength = DefaultDebounceMinLength
	}
	if config.DebounceQuiet <= 0 {
		config.DebounceQuiet = DefaultDebounceQuiet
	}
	if config.MaxSessions <= 0 {
		config.MaxSessions = DefaultMaxSessions
	}

	sessions, err := lru.NewWithEvict[string, *session](config.MaxSessions, func(_ string, s *session) {
		s.halt()
	})
	if err != nil {
		return nil, fmt.Errorf("gagal membuat tabel session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SessionService{
		parser:   p,
		catalog:  c,
		history:  history,
		exporter: exporter,
		sessions: sessions,
		config:   config,
		logger:   logger,
		baseCtx:  ctx,
		stop:     cancel,
	}, nil
}

// Create membuat session baru
func (ss *SessionService) Create() SessionView {
	s := &session{id: utils.GenerateSessionID(), updatedAt: time.Now()}
	ss.sessions.Add(s.id, s)
	ss.logger.Debug("Session dibuat", zap.String("session_id", s.id))
	return s.view()
}

// Get snapshot session
func (ss *SessionService) Get(id string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}
	return s.view(), nil
}

// UpdateInput menyimpan teks input. Parse dijadwalkan setelah input diam selama
// DebounceQuiet, hanya jika panjangnya melebihi DebounceMinLength; jadwal sebelumnya dibatalkan.
func (ss *SessionService) UpdateInput(id, text string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	s.input = text
	s.updatedAt = time.Now()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) > ss.config.DebounceMinLength {
		scheduled := s.generation
		s.timer = time.AfterFunc(ss.config.DebounceQuiet, func() {
			if err := ss.run(ss.baseCtx, s, text, &scheduled); err != nil && !isQuietParseError(err) {
				ss.logger.Warn("Parse terjadwal gagal", zap.String("session_id", s.id), zap.Error(err))
			}
		})
	}
	s.mu.Unlock()

	return s.view(), nil
}

// ParseNow parse input session sekarang tanpa menunggu debounce
func (ss *SessionService) ParseNow(ctx context.Context, id string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	text := s.input
	s.mu.Unlock()

	if err := ss.run(ctx, s, text, nil); err != nil {
		return SessionView{}, err
	}
	return s.view(), nil
}

// run menjalankan satu parse. Parse sebelumnya yang masih berjalan dibatalkan,
// dan hasil parse yang sudah tergantikan dibuang. scheduled non-nil untuk parse
// terjadwal: parse batal jika session sudah berubah sejak dijadwalkan.
func (ss *SessionService) run(parent context.Context, s *session, text string, scheduled *uint64) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.mu.Lock()
	if scheduled != nil && *scheduled != s.generation {
		s.mu.Unlock()
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.parsing = true
	s.status = parser.MessageAnalyzing
	s.mu.Unlock()

	result, err := ss.parser.Parse(ctx, text)
	var options SessionOptions
	var messages []string
	if err == nil {
		options, messages = ss.loadOptions(ctx, result.Address)
		messages = append(result.Messages, messages...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		ss.logger.Debug("Hasil parse usang dibuang",
			zap.String("session_id", s.id),
			zap.Uint64("generation", gen))
		return nil
	}
	s.cancel = nil
	s.parsing = false
	s.updatedAt = time.Now()

	if err != nil {
		s.status = ""
		return err
	}

	s.parsed = result.Address
	s.options = options
	s.status = strings.Join(messages, "; ")
	return nil
}

// Override memilih unit wilayah secara manual. Unit harus ada di list yang di-scope
// pilihan level di atasnya; level di bawahnya dikosongkan.
func (ss *SessionService) Override(ctx context.Context, id string, level models.Level, unitID string) (SessionView, error) {
	if !level.IsValid() {
		return SessionView{}, fmt.Errorf("%w: level %d", ErrUnknownField, level)
	}
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	// parse terjadwal/berjalan dibatalkan sebelum fetch supaya tidak mengganti
	// pilihan di atas level ini selama override berlangsung
	s.mu.Lock()
	s.supersede()
	gen := s.generation
	current := s.parsed
	s.mu.Unlock()

	parentID := ""
	if level > models.LevelProvince {
		parentID = current.SelectedID(level - 1)
		if parentID == "" {
			return SessionView{}, fmt.Errorf("%w: %s belum dipilih", ErrUnitNotFound, (level - 1).String())
		}
	}

	unit, ok, err := ss.catalog.Find(ctx, level, parentID, unitID)
	if err != nil {
		return SessionView{}, err
	}
	if !ok {
		return SessionView{}, fmt.Errorf("%w: %s %s", ErrUnitNotFound, level, unitID)
	}

	updated := current.WithUnit(unit)
	options, messages := ss.loadOptions(ctx, updated)

	var postalCode models.Field
	if level == models.LevelVillage {
		postalCode, err = ss.parser.ResolvePostal(ctx, unit.Name, updated.District.Value)
		if err != nil {
			ss.logger.Warn("Gagal lookup kode pos", zap.String("village", unit.Name), zap.Error(err))
			messages = append(messages, parser.MessagePostalFailed)
		}
	}

	if postalCode.Value != "" {
		updated.PostalCode = postalCode
	}

	s.mu.Lock()
	if s.generation != gen || s.parsed.SelectedID(level-1) != parentID {
		s.mu.Unlock()
		return SessionView{}, fmt.Errorf("%w: %s %s", ErrSelectionChanged, level, unitID)
	}
	s.parsed = updated
	s.options = options
	s.status = strings.Join(messages, "; ")
	s.updatedAt = time.Now()
	s.mu.Unlock()

	ss.logger.Debug("Override wilayah",
		zap.String("session_id", s.id),
		zap.String("level", level.String()),
		zap.String("unit_id", unit.ID))
	return s.view(), nil
}

// SetField mengisi field teks (postal_code, street, rt, rw) secara manual.
// RT/RW numerik di-pad 3 digit.
func (ss *SessionService) SetField(id, field, value string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	value = strings.TrimSpace(value)
	if field == models.FieldRT || field == models.FieldRW {
		value = parser.PadBlockNumber(value)
	}

	s.mu.Lock()
	updated, ok := s.parsed.WithText(field, value)
	if ok {
		s.supersede()
		s.parsed = updated
		s.updatedAt = time.Now()
	}
	s.mu.Unlock()

	if !ok {
		return SessionView{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return s.view(), nil
}

// Clear mengosongkan session
func (ss *SessionService) Clear(id string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	s.supersede()
	s.input = ""
	s.parsed = models.ParsedAddress{}
	s.options = SessionOptions{}
	s.status = ""
	s.updatedAt = time.Now()
	s.mu.Unlock()

	return s.view(), nil
}

// Save menyimpan input dan hasil parse session ke riwayat
func (ss *SessionService) Save(ctx context.Context, id string) (models.HistoryEntry, string, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return models.HistoryEntry{}, "", err
	}

	s.mu.Lock()
	input, parsed := s.input, s.parsed
	s.mu.Unlock()

	entry, message, err := ss.history.Save(ctx, input, parsed)
	if err != nil {
		return models.HistoryEntry{}, "", err
	}

	s.mu.Lock()
	s.status = message
	s.mu.Unlock()
	return entry, message, nil
}

// LoadFromHistory mengganti isi session dengan entri riwayat
func (ss *SessionService) LoadFromHistory(ctx context.Context, id, entryID string) (SessionView, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return SessionView{}, err
	}

	entry, err := ss.history.Get(ctx, entryID)
	if err != nil {
		return SessionView{}, err
	}

	options, messages := ss.loadOptions(ctx, entry.Parsed)

	s.mu.Lock()
	s.supersede()
	s.input = entry.RawAddress
	s.parsed = entry.Parsed
	s.options = options
	s.status = strings.Join(messages, "; ")
	s.updatedAt = time.Now()
	s.mu.Unlock()

	return s.view(), nil
}

// Export CSV hasil parse session
func (ss *SessionService) Export(id string) (ExportFile, error) {
	s, err := ss.lookup(id)
	if err != nil {
		return ExportFile{}, err
	}

	s.mu.Lock()
	input, parsed := s.input, s.parsed
	s.mu.Unlock()

	return ss.exporter.Export(input, parsed)
}

// Close membatalkan semua parse dan timer
func (ss *SessionService) Close() {
	ss.stop()
	ss.sessions.Purge()
}

// loadOptions memuat list dropdown sesuai id yang terpilih. Gagal muat menghasilkan
// list kosong dan pesan status.
func (ss *SessionService) loadOptions(ctx context.Context, p models.ParsedAddress) (SessionOptions, []string) {
	var options SessionOptions
	var messages []string

	load := func(level models.Level, parentID string) []models.AdministrativeUnit {
		if parentID == "" {
			return nil
		}
		units, err := ss.catalog.List(ctx, level, parentID)
		if err != nil {
			var fetchErr *catalog.FetchError
			if errors.As(err, &fetchErr) {
				messages = append(messages, fetchErr.StatusMessage())
			}
			return nil
		}
		return units
	}

	options.Regencies = load(models.LevelRegency, p.Province.ID)
	options.Districts = load(models.LevelDistrict, p.Regency.ID)
	options.Villages = load(models.LevelVillage, p.District.ID)
	return options, messages
}

func (ss *SessionService) lookup(id string) (*session, error) {
	s, ok := ss.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// supersede membatalkan parse terjadwal/berjalan; hasilnya nanti dibuang. Harus dipanggil dengan s.mu terkunci.
func (s *session) supersede() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.parsing = false
}

func (s *session) halt() {
	s.mu.Lock()
	s.supersede()
	s.mu.Unlock()
}

func (s *session) view() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionView{
		ID:      s.id,
		Input:   s.input,
		Parsed:  s.parsed,
		Status:  s.status,
		Parsing: s.parsing,
		Options: SessionOptions{
			Regencies: cloneUnits(s.options.Regencies),
			Districts: cloneUnits(s.options.Districts),
			Villages:  cloneUnits(s.options.Villages),
		},
		UpdatedAt: s.updatedAt,
	}
}

func cloneUnits(units []models.AdministrativeUnit) []models.AdministrativeUnit {
	out := make([]models.AdministrativeUnit, len(units))
	copy(out, units)
	return out
}

// isQuietParseError error parse terjadwal yang tidak perlu di-log
func isQuietParseError(err error) bool {
	return errors.Is(err, parser.ErrAddressTooShort) || errors.Is(err, context.Canceled)
}
