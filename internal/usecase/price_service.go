package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/promoprecio/backend/internal/domain"
)

// defaultHistoryDays is the time window for the historical view.
const defaultHistoryDays = 30

// ProductPrices holds a product and its observed prices for the term-based
// comparison view.
type ProductPrices struct {
	Product domain.Product             `json:"produto"`
	Prices  []domain.EstablishmentPrice `json:"precos"`
}

// ComparativeReport aggregates the latest price per establishment for one
// product. Statistics are carried at full decimal precision; rounding happens
// only at serialization.
type ComparativeReport struct {
	Product    domain.Product              `json:"produto"`
	Prices     []domain.EstablishmentPrice `json:"precos"`
	MinPrice   decimal.Decimal             `json:"preco_minimo"`
	MaxPrice   decimal.Decimal             `json:"preco_maximo"`
	MeanPrice  decimal.Decimal             `json:"preco_medio"`
	MaxSavings decimal.Decimal             `json:"economia_maxima"`
}

// PriceService aggregates price observations per product across
// establishments for comparison views.
type PriceService struct {
	prices   domain.PriceRepository
	products domain.ProductRepository
	search   *SearchService
}

// NewPriceService creates a new price comparison service with dependencies
func NewPriceService(
	prices domain.PriceRepository,
	products domain.ProductRepository,
	search *SearchService,
) *PriceService {
	return &PriceService{
		prices:   prices,
		products: products,
		search:   search,
	}
}

// CompareByProduct returns every observation for the product joined with
// establishment data, without deduplication by establishment. Interpreting
// "latest" versus "all" is the caller's concern.
func (s *PriceService) CompareByProduct(ctx context.Context, productID int64) ([]domain.EstablishmentPrice, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.prices.ListByProduct(ctx, productID)
}

// CompareByTerm resolves products via the catalog search, then returns each
// resolved product's price list sorted ascending by price. Products with zero
// observed prices are omitted.
func (s *PriceService) CompareByTerm(ctx context.Context, term string) ([]ProductPrices, error) {
	products, err := s.search.SearchProducts(ctx, term)
	if err != nil {
		return nil, err
	}

	results := make([]ProductPrices, 0, len(products))
	for _, product := range products {
		prices, err := s.prices.ListByProduct(ctx, product.ID)
		if err != nil {
			return nil, fmt.Errorf("prices for product %d: %w", product.ID, err)
		}
		if len(prices) == 0 {
			continue
		}

		sortPricesAscending(prices)
		results = append(results, ProductPrices{Product: product, Prices: prices})
	}

	return results, nil
}

// ComparativeReport groups observations by establishment, keeps only the most
// recent per establishment, sorts ascending by price and computes min, max,
// arithmetic mean and maximum potential savings (max - min). Equal collection
// timestamps are broken by highest observation id. Zero priced establishments
// yield zero statistics and an empty price list.
func (s *PriceService) ComparativeReport(ctx context.Context, productID int64) (*ComparativeReport, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	observations, err := s.prices.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	latest := make(map[int64]domain.EstablishmentPrice)
	for _, ep := range observations {
		current, ok := latest[ep.Establishment.ID]
		if !ok || newerObservation(ep.Observation, current.Observation) {
			latest[ep.Establishment.ID] = ep
		}
	}

	prices := make([]domain.EstablishmentPrice, 0, len(latest))
	for _, ep := range latest {
		prices = append(prices, ep)
	}
	sortPricesAscending(prices)

	report := &ComparativeReport{Product: *product, Prices: prices}
	if len(prices) == 0 {
		return report, nil
	}

	report.MinPrice = prices[0].Observation.Value
	report.MaxPrice = prices[len(prices)-1].Observation.Value

	sum := decimal.Zero
	for _, ep := range prices {
		sum = sum.Add(ep.Observation.Value)
	}
	report.MeanPrice = sum.Div(decimal.NewFromInt(int64(len(prices))))
	report.MaxSavings = report.MaxPrice.Sub(report.MinPrice)

	return report, nil
}

// History returns observations for the product within the last days days,
// newest first, joined with establishment details. No fuzzy matching is
// involved; history is keyed by exact product id.
func (s *PriceService) History(ctx context.Context, productID int64, days int) ([]domain.EstablishmentPrice, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	if days <= 0 {
		days = defaultHistoryDays
	}
	since := time.Now().AddDate(0, 0, -days)

	return s.prices.History(ctx, productID, since)
}

// ListPrices lists observations matching the filter, newest first.
func (s *PriceService) ListPrices(ctx context.Context, filter domain.PriceFilter) ([]domain.EstablishmentPrice, error) {
	if filter.MinValue != nil && filter.MaxValue != nil && filter.MinValue.GreaterThan(*filter.MaxValue) {
		return nil, fmt.Errorf("%w: preco_min greater than preco_max", domain.ErrValidation)
	}
	return s.prices.Filter(ctx, filter)
}

// newerObservation reports whether a should replace b as the most recent
// observation. Equal timestamps fall back to the higher id.
func newerObservation(a, b domain.PriceObservation) bool {
	if a.CollectedAt.After(b.CollectedAt) {
		return true
	}
	if a.CollectedAt.Equal(b.CollectedAt) {
		return a.ID > b.ID
	}
	return false
}

// sortPricesAscending orders by price; equal prices fall back to
// establishment id for deterministic output.
func sortPricesAscending(prices []domain.EstablishmentPrice) {
	sort.SliceStable(prices, func(i, j int) bool {
		cmp := prices[i].Observation.Value.Cmp(prices[j].Observation.Value)
		if cmp != 0 {
			return cmp < 0
		}
		return prices[i].Establishment.ID < prices[j].Establishment.ID
	})
}
