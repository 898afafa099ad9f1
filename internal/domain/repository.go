package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceFilter narrows observation listings. Zero-valued fields are ignored.
type PriceFilter struct {
	ProductID       int64
	EstablishmentID int64
	MinValue        *decimal.Decimal
	MaxValue        *decimal.Decimal
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Product, error)

	// SearchSubstring matches term case-insensitively against description
	// and EAN.
	SearchSubstring(ctx context.Context, term string) ([]Product, error)
	// AllDescriptions returns up to limit product descriptions, the candidate
	// universe for fuzzy matching.
	AllDescriptions(ctx context.Context, limit int) ([]string, error)
	// FindByDescriptions returns products whose description equals any of the
	// given strings.
	FindByDescriptions(ctx context.Context, descriptions []string) ([]Product, error)
}

// EstablishmentRepository defines persistence operations for establishments.
type EstablishmentRepository interface {
	Create(ctx context.Context, e *Establishment) error
	GetByID(ctx context.Context, id int64) (*Establishment, error)
	Update(ctx context.Context, e *Establishment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Establishment, error)

	// SearchSubstring matches term case-insensitively against name,
	// neighborhood, city and CNPJ.
	SearchSubstring(ctx context.Context, term string) ([]Establishment, error)
	AllNames(ctx context.Context, limit int) ([]string, error)
	FindByNames(ctx context.Context, names []string) ([]Establishment, error)
}

// PriceRepository defines persistence operations for price observations.
type PriceRepository interface {
	Create(ctx context.Context, o *PriceObservation) error
	// ListByProduct returns every observation for the product joined with its
	// establishment, without deduplication.
	ListByProduct(ctx context.Context, productID int64) ([]EstablishmentPrice, error)
	// History returns observations for the product collected at or after
	// since, newest first.
	History(ctx context.Context, productID int64, since time.Time) ([]EstablishmentPrice, error)
	// Filter lists observations matching the filter, newest first.
	Filter(ctx context.Context, f PriceFilter) ([]EstablishmentPrice, error)
}

// ShoppingListRepository defines persistence operations for shopping lists
// and their items.
type ShoppingListRepository interface {
	CreateList(ctx context.Context, l *ShoppingList) error
	GetList(ctx context.Context, id int64) (*ShoppingList, error)
	ListLists(ctx context.Context) ([]ShoppingList, error)
	DeactivateList(ctx context.Context, id int64) error

	AddItem(ctx context.Context, item *ShoppingListItem) error
	GetItem(ctx context.Context, listID, itemID int64) (*ShoppingListItem, error)
	GetItemByProduct(ctx context.Context, listID, productID int64) (*ShoppingListItem, error)
	UpdateItem(ctx context.Context, item *ShoppingListItem) error
	DeleteItem(ctx context.Context, listID, itemID int64) error
	ItemsWithProducts(ctx context.Context, listID int64) ([]ListItemDetail, error)
}

// CachedResponse is the payload kept by the read-through response cache.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, value *CachedResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
