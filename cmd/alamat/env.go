package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alamat-parser/app/config"
	"github.com/alamat-parser/app/services"
	"github.com/alamat-parser/helpers/utils"
	"github.com/alamat-parser/internal/catalog"
	"github.com/alamat-parser/internal/parser"
	"github.com/alamat-parser/internal/postal"
	"github.com/alamat-parser/internal/search"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// env dependensi yang dipakai semua command
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	source  *catalog.HTTPProvider
	parser  *parser.AddressParser
}

func newEnv(c *cli.Context) (*env, error) {
	if c.Bool("no-color") || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	var paths []string
	if dir := c.String("config"); dir != "" {
		paths = append(paths, dir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	// CLI hanya log warning ke stderr
	logger, err := utils.NewLogger("production")
	if err != nil {
		return nil, err
	}
	logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))

	source := catalog.NewHTTPProvider(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)
	var provider catalog.Provider = source
	if cfg.Catalog.Source == config.SourceMeilisearch {
		index, err := openIndex(cfg, logger)
		if err != nil {
			return nil, err
		}
		provider = index
	}

	wilayah, err := catalog.NewCatalog(provider, cfg.Catalog.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	resolver := postal.NewResolver(postal.NewClient(cfg.Postal.BaseURL, cfg.Postal.Timeout, logger), logger)

	return &env{
		cfg:     cfg,
		logger:  logger,
		catalog: wilayah,
		source:  source,
		parser:  parser.NewAddressParser(wilayah, resolver, cfg.Parser.MinLength, logger),
	}, nil
}

func openIndex(cfg *config.Config, logger *zap.Logger) (*search.WilayahIndex, error) {
	return search.NewWilayahIndex(search.SearchConfig{
		Host:      cfg.Meilisearch.URL,
		APIKey:    cfg.Meilisearch.MasterKey,
		IndexName: cfg.Meilisearch.Index,
	}, logger)
}

func (e *env) history() (*services.HistoryService, error) {
	store, err := services.NewHistoryStore(e.cfg.History, e.logger)
	if err != nil {
		return nil, err
	}
	return services.NewHistoryService(store, e.cfg.History.Prefix, e.cfg.History.Limit, e.logger), nil
}

// addressArg alamat dari argumen, atau dari stdin jika stdin bukan terminal
func addressArg(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("alamat kosong: berikan sebagai argumen atau lewat stdin")
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", fmt.Errorf("gagal membaca stdin: %w", err)
	}
	address := strings.TrimSpace(string(data))
	if address == "" {
		return "", errors.New("alamat kosong")
	}
	return address, nil
}
