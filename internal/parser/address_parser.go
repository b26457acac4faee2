package parser

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alamat-parser/app/models"
	"github.com/alamat-parser/internal/postal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMinLength panjang minimal alamat untuk di-parse
const DefaultMinLength = 10

// Pesan status
const (
	MessageAnalyzing    = "Menganalisis alamat..."
	MessagePostalFailed = "Gagal memuat kode pos"
)

// ErrAddressTooShort alamat di bawah panjang minimal
var ErrAddressTooShort = errors.New("alamat terlalu pendek untuk dianalisis")

var postalCodeRegex = regexp.MustCompile(`\b\d{5}\b`)

// PostalResolver pencari kode pos berdasarkan nama kelurahan dan kecamatan
type PostalResolver interface {
	Resolve(ctx context.Context, villageName, districtName string) (postal.Match, error)
}

// Result hasil parse satu alamat
type Result struct {
	Address  models.ParsedAddress `json:"address"`
	Messages []string             `json:"messages,omitempty"`
}

// AddressParser parser alamat utama
type AddressParser struct {
	matcher   *Matcher
	postal    PostalResolver
	minLength int
	logger    *zap.Logger
}

// NewAddressParser membuat AddressParser. resolver boleh nil (tanpa lookup kode pos).
func NewAddressParser(catalog CatalogReader, resolver PostalResolver, minLength int, logger *zap.Logger) *AddressParser {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &AddressParser{
		matcher:   NewMatcher(catalog, logger),
		postal:    resolver,
		minLength: minLength,
		logger:    logger,
	}
}

// MinLength panjang minimal alamat
func (ap *AddressParser) MinLength() int {
	return ap.minLength
}

// Parse mengurai satu alamat. RT/RW diekstrak bersamaan dengan cascade wilayah;
// kode pos 5 digit yang tertulis di alamat selalu menang atas hasil lookup.
func (ap *AddressParser) Parse(ctx context.Context, address string) (Result, error) {
	if utf8.RuneCountInString(strings.TrimSpace(address)) < ap.minLength {
		return Result{}, ErrAddressTooShort
	}

	var (
		rt, rw   string
		parsed   models.ParsedAddress
		messages []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt, rw = ExtractRTRW(address)
		return nil
	})
	g.Go(func() error {
		var err error
		parsed, messages, err = ap.matcher.Match(gctx, address)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	parsed.RT = blockField(rt)
	parsed.RW = blockField(rw)

	if parsed.Village.IsResolved() && ap.postal != nil {
		match, err := ap.postal.Resolve(ctx, parsed.Village.Value, parsed.District.Value)
		switch {
		case err != nil && ctx.Err() != nil:
			return Result{}, ctx.Err()
		case err != nil:
			ap.logger.Warn("Gagal lookup kode pos",
				zap.String("village", parsed.Village.Value),
				zap.Error(err))
			messages = append(messages, MessagePostalFailed)
		case match.Found():
			parsed.PostalCode = models.Field{Value: match.Code, Confidence: match.Confidence}
		}
	}

	if code := postalCodeRegex.FindString(address); code != "" {
		parsed.PostalCode = models.Field{Value: code, Confidence: ConfidencePostalLiteral}
	}

	if street := ExtractStreet(address, parsed.Village.Value, parsed.District.Value); street != "" {
		parsed.Street = models.Field{Value: street, Confidence: ConfidenceStreet}
	}

	ap.logger.Debug("Alamat di-parse",
		zap.String("province", parsed.Province.Value),
		zap.String("regency", parsed.Regency.Value),
		zap.String("district", parsed.District.Value),
		zap.String("village", parsed.Village.Value),
		zap.String("postal_code", parsed.PostalCode.Value),
		zap.Int("messages", len(messages)))

	return Result{Address: parsed, Messages: messages}, nil
}

// ResolvePostal lookup kode pos untuk kelurahan yang dipilih manual
func (ap *AddressParser) ResolvePostal(ctx context.Context, villageName, districtName string) (models.Field, error) {
	if ap.postal == nil {
		return models.Field{}, nil
	}
	match, err := ap.postal.Resolve(ctx, villageName, districtName)
	if err != nil {
		return models.Field{}, err
	}
	if !match.Found() {
		return models.Field{}, nil
	}
	return models.Field{Value: match.Code, Confidence: match.Confidence}, nil
}

func blockField(value string) models.Field {
	if value == "" {
		return models.Field{}
	}
	return models.Field{Value: value, Confidence: ConfidenceBlockNumber}
}
