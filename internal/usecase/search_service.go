package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/promoprecio/backend/internal/domain"
)

// exactMatchFloor is the exact-result count below which the fuzzy fallback
// activates. Pure substring matching misses typos and alternate spellings,
// but fuzzy matching is too imprecise to always run.
const exactMatchFloor = 3

// defaultMaxCandidates bounds the candidate universe handed to the fuzzy
// matcher, keeping the only CPU-bound step of a search request bounded.
const defaultMaxCandidates = 5000

// SearchServiceConfig holds configuration for the catalog search service
type SearchServiceConfig struct {
	ScoreThreshold     int
	FuzzyLimit         int
	MaxCandidates      int
	EnableDebugLogging bool
}

// SearchService resolves free-text queries against product and establishment
// records, combining exact substring filtering with a fuzzy fallback.
type SearchService struct {
	products           domain.ProductRepository
	establishments     domain.EstablishmentRepository
	fuzzy              *FuzzyMatcher
	maxCandidates      int
	enableDebugLogging bool
}

// NewSearchService creates a new catalog search service with dependencies
func NewSearchService(
	products domain.ProductRepository,
	establishments domain.EstablishmentRepository,
	config SearchServiceConfig,
) *SearchService {
	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	return &SearchService{
		products:       products,
		establishments: establishments,
		fuzzy: NewFuzzyMatcher(FuzzyConfig{
			ScoreThreshold:     config.ScoreThreshold,
			Limit:              config.FuzzyLimit,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		maxCandidates:      maxCandidates,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// SearchProducts resolves a free-text query against products.
// Flow: sanitize -> substring match -> fuzzy fallback when results are
// sparse -> merge with exact matches first. No results is a valid, successful
// outcome, never an error.
func (s *SearchService) SearchProducts(ctx context.Context, rawTerm string) ([]domain.Product, error) {
	term := SanitizeSearchTerm(rawTerm)
	if term == "" {
		return s.products.List(ctx)
	}

	exact, err := s.products.SearchSubstring(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("product substring search: %w", err)
	}

	if len(exact) >= exactMatchFloor {
		return exact, nil
	}

	universe, err := s.products.AllDescriptions(ctx, s.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("product candidate universe: %w", err)
	}

	picks := s.fuzzy.Match(term, universe)
	if len(picks) == 0 {
		return exact, nil
	}

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q: %d exact, fuzzy picked %v", term, len(exact), picks)
	}

	broadened, err := s.products.FindByDescriptions(ctx, picks)
	if err != nil {
		return nil, fmt.Errorf("product fuzzy lookup: %w", err)
	}

	merged := exact
	seen := make(map[int64]bool, len(exact))
	for _, p := range exact {
		seen[p.ID] = true
	}
	for _, p := range broadened {
		if !seen[p.ID] {
			merged = append(merged, p)
			seen[p.ID] = true
		}
	}

	return merged, nil
}

// SearchEstablishments resolves a free-text query against establishments,
// with the same two-tier strategy as SearchProducts.
func (s *SearchService) SearchEstablishments(ctx context.Context, rawTerm string) ([]domain.Establishment, error) {
	term := SanitizeSearchTerm(rawTerm)
	if term == "" {
		return s.establishments.List(ctx)
	}

	exact, err := s.establishments.SearchSubstring(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("establishment substring search: %w", err)
	}

	if len(exact) >= exactMatchFloor {
		return exact, nil
	}

	universe, err := s.establishments.AllNames(ctx, s.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("establishment candidate universe: %w", err)
	}

	picks := s.fuzzy.Match(term, universe)
	if len(picks) == 0 {
		return exact, nil
	}

	broadened, err := s.establishments.FindByNames(ctx, picks)
	if err != nil {
		return nil, fmt.Errorf("establishment fuzzy lookup: %w", err)
	}

	merged := exact
	seen := make(map[int64]bool, len(exact))
	for _, e := range exact {
		seen[e.ID] = true
	}
	for _, e := range broadened {
		if !seen[e.ID] {
			merged = append(merged, e)
			seen[e.ID] = true
		}
	}

	return merged, nil
}
