package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/clients/mfapi"
)

// Pagination bounds for catalog listings.
const (
	DefaultLimit = 100
	MaxLimit     = 5000
)

// Lister provides the upstream scheme catalog.
type Lister interface {
	List(ctx context.Context) ([]mfapi.CatalogEntry, error)
}

// Service filters and paginates the scheme catalog.
type Service struct {
	provider Lister
	log      zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(provider Lister, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log.With().Str("service", "catalog").Logger(),
	}
}

// List returns catalog entries matching the filter, paginated.
func (s *Service) List(ctx context.Context, filter Filter) (ListResult, error) {
	raw, err := s.provider.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to list schemes: %w", err)
	}

	matched := make([]Entry, 0, len(raw))
	for _, r := range raw {
		entry := Entry{
			SchemeCode:      r.SchemeCode,
			SchemeName:      r.SchemeName,
			FundHouse:       deriveFundHouse(r.SchemeName),
			ISINGrowth:      r.ISINGrowth,
			ISINDivReinvest: r.ISINDivReinvest,
		}
		if matches(entry, filter) {
			matched = append(matched, entry)
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(matched) {
		offset = len(matched)
	}

	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	return ListResult{
		Count:   len(matched),
		Results: matched[offset:end],
	}, nil
}

func matches(e Entry, f Filter) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(e.SchemeName), q) &&
			!strings.Contains(strings.ToLower(e.FundHouse), q) {
			return false
		}
	}

	if f.CodePrefix != "" {
		if !strings.HasPrefix(strconv.Itoa(e.SchemeCode), f.CodePrefix) {
			return false
		}
	}

	if f.FundHouse != "" && !strings.EqualFold(e.FundHouse, f.FundHouse) {
		return false
	}

	if f.Category != "" {
		if !strings.Contains(strings.ToLower(e.SchemeName), strings.ToLower(f.Category)) {
			return false
		}
	}

	return true
}

// deriveFundHouse extracts the fund house from the scheme name prefix.
// Catalog entries do not carry a fund house field upstream; scheme names
// follow the "House Name - Plan - Option" convention.
func deriveFundHouse(name string) string {
	if idx := strings.Index(name, "-"); idx > 0 {
		return strings.TrimSpace(name[:idx])
	}
	return ""
}
