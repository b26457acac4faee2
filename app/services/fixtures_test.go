package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	"github.com/alamat-parser/internal/postal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// wilayahProvider provider in-memory untuk test
type wilayahProvider struct {
	mu       sync.Mutex
	children map[string][]models.AdministrativeUnit
	calls    int
}

func newWilayahProvider() *wilayahProvider {
	unit := func(id, name, parent string, level models.Level) models.AdministrativeUnit {
		return models.AdministrativeUnit{ID: id, Name: name, ParentID: parent, Level: level}
	}
	return &wilayahProvider{
		children: map[string][]models.AdministrativeUnit{
			"province:": {
				unit("31", "DKI JAKARTA", "", models.LevelProvince),
				unit("32", "JAWA BARAT", "", models.LevelProvince),
			},
			"regency:31": {unit("3173", "KOTA JAKARTA PUSAT", "31", models.LevelRegency)},
			"regency:32": {
				unit("3204", "KABUPATEN BANDUNG", "32", models.LevelRegency),
				unit("3273", "KOTA BANDUNG", "32", models.LevelRegency),
			},
			"district:3173": {
				unit("3173010", "GAMBIR", "3173", models.LevelDistrict),
				unit("3173060", "MENTENG", "3173", models.LevelDistrict),
			},
			"district:3273": {unit("3273010", "SUKASARI", "3273", models.LevelDistrict)},
			"village:3173060": {
				unit("3173060001", "MENTENG", "3173060", models.LevelVillage),
				unit("3173060002", "PEGANGSAAN", "3173060", models.LevelVillage),
			},
			"village:3273010": {unit("3273010001", "SARIJADI", "3273010", models.LevelVillage)},
		},
	}
}

func (p *wilayahProvider) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.children[level.String()+":"+parentID], nil
}

// blockingProvider menahan fetch satu key sampai release ditutup
type blockingProvider struct {
	catalog.Provider
	key     string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingProvider(p catalog.Provider, key string) *blockingProvider {
	return &blockingProvider{
		Provider: p,
		key:      key,
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (p *blockingProvider) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	if level.String()+":"+parentID == p.key {
		p.once.Do(func() { close(p.entered) })
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.Provider.List(ctx, level, parentID)
}

// stubPostal resolver kode pos tetap
type stubPostal struct {
	code string
	fail bool
}

func (s stubPostal) Resolve(_ context.Context, _, _ string) (postal.Match, error) {
	if s.fail {
		return postal.Match{}, errors.New("kodepos down")
	}
	if s.code == "" {
		return postal.Match{}, nil
	}
	return postal.Match{Code: s.code, Confidence: postal.ConfidenceExact}, nil
}

// failingStore store yang selalu gagal
type failingStore struct{}

func (failingStore) List(context.Context, string) ([]string, error) {
	return nil, errors.New("store down")
}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("store down")
}

func (failingStore) Close() error { return nil }

func newTestCatalog(t *testing.T, p catalog.Provider) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewCatalog(p, 64, zap.NewNop())
	require.NoError(t, err)
	return c
}

func newTestParser(c *catalog.Catalog, resolver parser.PostalResolver) *parser.AddressParser {
	return parser.NewAddressParser(c, resolver, parser.DefaultMinLength, zap.NewNop())
}
