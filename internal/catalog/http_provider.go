package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alamat-parser/app/models"
	"go.uber.org/zap"
)

// DefaultBaseURL API wilayah Indonesia (emsifa)
const DefaultBaseURL = "https://www.emsifa.com/api-wilayah-indonesia/api"

// HTTPProvider provider wilayah dari API JSON statis:
// /provinces.json, /regencies/{provinceId}.json, /districts/{regencyId}.json, /villages/{districtId}.json
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// wilayahDTO item response API wilayah
type wilayahDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewHTTPProvider membuat HTTPProvider
func NewHTTPProvider(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// List mengambil list wilayah satu level yang di-scope parentID
func (p *HTTPProvider) List(ctx context.Context, level models.Level, parentID string) ([]models.AdministrativeUnit, error) {
	endpoint, err := p.endpoint(level, parentID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", level, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get %s: status %d: %s", level, resp.StatusCode, string(body))
	}

	var items []wilayahDTO
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", level, err)
	}

	units := make([]models.AdministrativeUnit, 0, len(items))
	for _, item := range items {
		units = append(units, models.AdministrativeUnit{
			ID:       item.ID,
			Name:     item.Name,
			ParentID: parentID,
			Level:    level,
		})
	}

	p.logger.Debug("Wilayah loaded",
		zap.String("level", level.String()),
		zap.String("parent_id", parentID),
		zap.Int("count", len(units)),
		zap.Duration("duration", time.Since(start)))

	return units, nil
}

func (p *HTTPProvider) endpoint(level models.Level, parentID string) (string, error) {
	if level == models.LevelProvince {
		return p.baseURL + "/provinces.json", nil
	}
	if parentID == "" {
		return "", fmt.Errorf("parent id wajib untuk level %s", level)
	}

	var segment string
	switch level {
	case models.LevelRegency:
		segment = "regencies"
	case models.LevelDistrict:
		segment = "districts"
	case models.LevelVillage:
		segment = "villages"
	default:
		return "", fmt.Errorf("level tidak dikenal: %d", level)
	}
	return fmt.Sprintf("%s/%s/%s.json", p.baseURL, segment, url.PathEscape(parentID)), nil
}
