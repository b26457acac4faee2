package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alamat-parser/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingProvider struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (p *countingProvider) List(_ context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return []models.AdministrativeUnit{
		{ID: parentID + "01", Name: "UNIT " + level.String(), ParentID: parentID, Level: level},
	}, nil
}

func newTestCatalog(t *testing.T, p Provider) *Catalog {
	t.Helper()
	c, err := NewCatalog(p, 16, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestCatalog_CachesPerParent(t *testing.T) {
	p := &countingProvider{}
	c := newTestCatalog(t, p)
	ctx := context.Background()

	_, err := c.Regencies(ctx, "32")
	require.NoError(t, err)
	_, err = c.Regencies(ctx, "32")
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.calls.Load())

	_, err = c.Regencies(ctx, "31")
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.calls.Load())

	assert.True(t, c.Invalidate(models.LevelRegency, "32"))
	_, err = c.Regencies(ctx, "32")
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.calls.Load())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_EmptyParentSkipsProvider(t *testing.T) {
	p := &countingProvider{}
	c := newTestCatalog(t, p)

	units, err := c.Villages(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, units)
	assert.EqualValues(t, 0, p.calls.Load())
}

func TestCatalog_FetchError(t *testing.T) {
	p := &countingProvider{err: errors.New("boom")}
	c := newTestCatalog(t, p)

	_, err := c.Districts(context.Background(), "3273")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, models.LevelDistrict, fetchErr.Level)
	assert.Equal(t, "Gagal memuat data kecamatan", fetchErr.StatusMessage())
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_ConcurrentFetchesShareRequest(t *testing.T) {
	p := &countingProvider{delay: 50 * time.Millisecond}
	c := newTestCatalog(t, p)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Provinces(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, p.calls.Load())
}

// gatedProvider menahan fetch sampai release ditutup, atau ctx fetch batal
type gatedProvider struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (p *gatedProvider) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	if p.calls.Add(1) == 1 {
		close(p.started)
	}
	select {
	case <-p.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []models.AdministrativeUnit{{ID: "31", Name: "DKI JAKARTA", Level: level}}, nil
}

func TestCatalog_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	p := &gatedProvider{started: make(chan struct{}), release: make(chan struct{})}
	c := newTestCatalog(t, p)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Provinces(ctxA)
		errA <- err
	}()
	<-p.started

	type result struct {
		units []models.AdministrativeUnit
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		units, err := c.Provinces(context.Background())
		resB <- result{units: units, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
		var fetchErr *FetchError
		assert.False(t, errors.As(err, &fetchErr))
	case <-time.After(time.Second):
		t.Fatal("caller yang dibatalkan tidak kembali")
	}

	close(p.release)
	b := <-resB
	require.NoError(t, b.err)
	require.Len(t, b.units, 1)
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestHTTPProvider_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/provinces.json":
			_, _ = w.Write([]byte(`[{"id":"31","name":"DKI JAKARTA"},{"id":"32","name":"JAWA BARAT"}]`))
		case "/regencies/32.json":
			_, _ = w.Write([]byte(`[{"id":"3204","province_id":"32","name":"KABUPATEN BANDUNG"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", time.Second, zap.NewNop())
	ctx := context.Background()

	provinces, err := p.List(ctx, models.LevelProvince, "")
	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, "JAWA BARAT", provinces[1].Name)
	assert.Equal(t, models.LevelProvince, provinces[1].Level)

	regencies, err := p.List(ctx, models.LevelRegency, "32")
	require.NoError(t, err)
	require.Len(t, regencies, 1)
	assert.Equal(t, "32", regencies[0].ParentID)

	_, err = p.List(ctx, models.LevelDistrict, "9999")
	assert.Error(t, err)

	_, err = p.List(ctx, models.LevelDistrict, "")
	assert.Error(t, err)
}
