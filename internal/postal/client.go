// Package postal mencari kode pos berdasarkan nama kelurahan/desa
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL layanan kodepos
const DefaultBaseURL = "https://kodepos.vercel.app"

// Candidate satu hasil pencarian kode pos
type Candidate struct {
	Urban       string `json:"urban"`
	Subdistrict string `json:"subdistrict"`
	PostalCode  Code   `json:"postal_code"`
}

// Code kode pos; API kadang mengirim angka, kadang string
type Code string

// UnmarshalJSON menerima "40115" maupun 40115
func (c *Code) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*c = Code(strings.TrimSpace(str))
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("kode pos tidak valid: %s", s)
	}
	*c = Code(fmt.Sprintf("%05d", n))
	return nil
}

// searchResponse body response /search
type searchResponse struct {
	Code     int             `json:"code"`
	Messages json.RawMessage `json:"messages"`
}

// Client HTTP client layanan kodepos
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient membuat Client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search mencari kandidat kode pos untuk nama wilayah.
// Response dengan code != 200 dianggap tanpa kandidat.
func (c *Client) Search(ctx context.Context, name string) ([]Candidate, error) {
	endpoint := fmt.Sprintf("%s/search/?q=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cari kode pos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("cari kode pos: status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode kode pos: %w", err)
	}

	if result.Code != http.StatusOK {
		c.logger.Debug("Kode pos tidak ditemukan",
			zap.String("query", name),
			zap.Int("code", result.Code))
		return nil, nil
	}

	var candidates []Candidate
	if err := json.Unmarshal(result.Messages, &candidates); err != nil {
		return nil, fmt.Errorf("decode kandidat kode pos: %w", err)
	}
	return candidates, nil
}
