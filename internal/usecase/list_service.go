package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/promoprecio/backend/internal/domain"
)

// ListSummary describes a shopping list with purchase progress.
type ListSummary struct {
	List           domain.ShoppingList `json:"lista"`
	TotalItems     int                 `json:"total_itens"`
	PurchasedItems int                 `json:"itens_comprados"`
	Progress       float64             `json:"progresso"` // percent, 0-100
}

// ListItemPrice is a list item with its lowest observed price, if any.
type ListItemPrice struct {
	Item        domain.ShoppingListItem `json:"item"`
	Product     domain.Product          `json:"produto"`
	LowestPrice *decimal.Decimal        `json:"menor_preco,omitempty"`
}

// ListDetail is a shopping list with its items.
type ListDetail struct {
	List  domain.ShoppingList `json:"lista"`
	Items []ListItemPrice     `json:"itens"`
}

// EstablishmentTotal accumulates a basket total at one establishment.
type EstablishmentTotal struct {
	Establishment domain.Establishment `json:"estabelecimento"`
	Total         decimal.Decimal      `json:"total"`
	ItemsFound    int                  `json:"itens_encontrados"`
	TotalItems    int                  `json:"total_itens"`
}

// ItemSpread is the cheapest and most expensive observed price for one item
// across all establishments.
type ItemSpread struct {
	Product  domain.Product  `json:"produto"`
	Quantity int             `json:"quantidade"`
	MinPrice decimal.Decimal `json:"preco_minimo"`
	MaxPrice decimal.Decimal `json:"preco_maximo"`
	Priced   bool            `json:"precificado"`
}

// BasketComparison is the result of comparing a shopping list across
// establishments. Establishments are ordered ascending by total, so the
// first entry is the cheapest overall basket. TotalEconomy is the
// quantity-weighted difference between buying every item at its most
// expensive versus its cheapest store.
type BasketComparison struct {
	List           domain.ShoppingList  `json:"lista"`
	Establishments []EstablishmentTotal `json:"comparacao"`
	Items          []ItemSpread         `json:"itens"`
	TotalEconomy   decimal.Decimal      `json:"economia_total"`
}

// ListService manages shopping lists and aggregates basket totals per
// establishment.
type ListService struct {
	lists    domain.ShoppingListRepository
	products domain.ProductRepository
	prices   domain.PriceRepository
}

// NewListService creates a new shopping list service with dependencies
func NewListService(
	lists domain.ShoppingListRepository,
	products domain.ProductRepository,
	prices domain.PriceRepository,
) *ListService {
	return &ListService{
		lists:    lists,
		products: products,
		prices:   prices,
	}
}

// CreateList creates a shopping list. The name must have at least 2
// characters after trimming.
func (s *ListService) CreateList(ctx context.Context, name string) (*domain.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return nil, fmt.Errorf("%w: list name must have at least 2 characters", domain.ErrValidation)
	}

	list := &domain.ShoppingList{Name: name, Active: true}
	if err := s.lists.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListLists returns active lists with purchase progress.
func (s *ListService) ListLists(ctx context.Context) ([]ListSummary, error) {
	lists, err := s.lists.ListLists(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		items, err := s.lists.ItemsWithProducts(ctx, list.ID)
		if err != nil {
			return nil, err
		}

		purchased := 0
		for _, it := range items {
			if it.Item.Purchased {
				purchased++
			}
		}

		progress := 0.0
		if len(items) > 0 {
			progress = float64(purchased) / float64(len(items)) * 100
		}

		summaries = append(summaries, ListSummary{
			List:           list,
			TotalItems:     len(items),
			PurchasedItems: purchased,
			Progress:       progress,
		})
	}

	return summaries, nil
}

// GetList returns a list with its items and each item's lowest observed
// price.
func (s *ListService) GetList(ctx context.Context, listID int64) (*ListDetail, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	items, err := s.lists.ItemsWithProducts(ctx, listID)
	if err != nil {
		return nil, err
	}

	detail := &ListDetail{List: *list, Items: make([]ListItemPrice, 0, len(items))}
	for _, it := range items {
		entry := ListItemPrice{Item: it.Item, Product: it.Product}

		prices, err := s.prices.ListByProduct(ctx, it.Product.ID)
		if err != nil {
			return nil, err
		}
		for _, ep := range prices {
			if entry.LowestPrice == nil || ep.Observation.Value.LessThan(*entry.LowestPrice) {
				v := ep.Observation.Value
				entry.LowestPrice = &v
			}
		}

		detail.Items = append(detail.Items, entry)
	}

	return detail, nil
}

// DeactivateList soft-deletes a list.
func (s *ListService) DeactivateList(ctx context.Context, listID int64) error {
	if _, err := s.lists.GetList(ctx, listID); err != nil {
		return err
	}
	return s.lists.DeactivateList(ctx, listID)
}

// AddItem adds a product to a list. Quantity defaults to 1 and must be
// positive. Adding a product already on the list increments its quantity.
func (s *ListService) AddItem(ctx context.Context, listID, productID int64, quantity int) (*domain.ShoppingListItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	if _, err := s.lists.GetList(ctx, listID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.lists.GetItemByProduct(ctx, listID, productID)
	if err == nil {
		existing.Quantity += quantity
		if err := s.lists.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &domain.ShoppingListItem{ListID: listID, ProductID: productID, Quantity: quantity}
	if err := s.lists.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem changes an item's quantity and/or purchased flag. Nil fields are
// left untouched.
func (s *ListService) UpdateItem(ctx context.Context, listID, itemID int64, quantity *int, purchased *bool) (*domain.ShoppingListItem, error) {
	if _, err := s.lists.GetList(ctx, listID); err != nil {
		return nil, err
	}

	item, err := s.lists.GetItem(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity != nil {
		if *quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
		}
		item.Quantity = *quantity
	}
	if purchased != nil {
		item.Purchased = *purchased
	}

	if err := s.lists.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem removes an item from a list.
func (s *ListService) RemoveItem(ctx context.Context, listID, itemID int64) error {
	if _, err := s.lists.GetList(ctx, listID); err != nil {
		return err
	}
	if _, err := s.lists.GetItem(ctx, listID, itemID); err != nil {
		return err
	}
	return s.lists.DeleteItem(ctx, listID, itemID)
}

// CompareBasket sums per-establishment totals across the list's items. An
// establishment only accumulates contributions from items it has actually
// priced; items with no price anywhere are skipped, not treated as zero-cost.
// An empty item list is a validation error.
func (s *ListService) CompareBasket(ctx context.Context, listID int64) (*BasketComparison, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	items, err := s.lists.ItemsWithProducts(ctx, listID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: shopping list has no items", domain.ErrValidation)
	}

	totals := make(map[int64]*EstablishmentTotal)
	spreads := make([]ItemSpread, 0, len(items))
	economy := decimal.Zero

	for _, it := range items {
		prices, err := s.prices.ListByProduct(ctx, it.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("prices for product %d: %w", it.Product.ID, err)
		}

		spread := ItemSpread{Product: it.Product, Quantity: it.Item.Quantity}
		quantity := decimal.NewFromInt(int64(it.Item.Quantity))

		counted := make(map[int64]bool)
		for _, ep := range prices {
			estID := ep.Establishment.ID
			entry, ok := totals[estID]
			if !ok {
				entry = &EstablishmentTotal{
					Establishment: ep.Establishment,
					Total:         decimal.Zero,
					TotalItems:    len(items),
				}
				totals[estID] = entry
			}

			entry.Total = entry.Total.Add(ep.Observation.Value.Mul(quantity))
			if !counted[estID] {
				entry.ItemsFound++
				counted[estID] = true
			}

			if !spread.Priced {
				spread.MinPrice = ep.Observation.Value
				spread.MaxPrice = ep.Observation.Value
				spread.Priced = true
				continue
			}
			if ep.Observation.Value.LessThan(spread.MinPrice) {
				spread.MinPrice = ep.Observation.Value
			}
			if ep.Observation.Value.GreaterThan(spread.MaxPrice) {
				spread.MaxPrice = ep.Observation.Value
			}
		}

		if spread.Priced {
			economy = economy.Add(spread.MaxPrice.Sub(spread.MinPrice).Mul(quantity))
		}
		spreads = append(spreads, spread)
	}

	comparison := &BasketComparison{
		List:           *list,
		Establishments: make([]EstablishmentTotal, 0, len(totals)),
		Items:          spreads,
		TotalEconomy:   economy,
	}
	for _, entry := range totals {
		comparison.Establishments = append(comparison.Establishments, *entry)
	}

	sort.SliceStable(comparison.Establishments, func(i, j int) bool {
		cmp := comparison.Establishments[i].Total.Cmp(comparison.Establishments[j].Total)
		if cmp != 0 {
			return cmp < 0
		}
		return comparison.Establishments[i].Establishment.ID < comparison.Establishments[j].Establishment.ID
	})

	return comparison, nil
}
