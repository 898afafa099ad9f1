package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry identified by its free-text description and,
// optionally, an EAN-13 barcode.
type Product struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao"`
	EAN         string `json:"ean,omitempty"`
}

// Establishment is a store where prices are observed. Neighborhood and city
// are required; CNPJ is the optional 14-digit company identifier.
type Establishment struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	CNPJ         string `json:"cnpj,omitempty"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
}

// PriceObservation is a single recorded price for a product at an
// establishment at a point in time. Observations are append-only; "history"
// is the full set filtered by time window at query time.
type PriceObservation struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"produto_id"`
	EstablishmentID int64           `json:"estabelecimento_id"`
	Value           decimal.Decimal `json:"valor"`
	CollectedAt     time.Time       `json:"data_coleta"`
	Observer        string          `json:"observador,omitempty"`
}

// EstablishmentPrice pairs an observation with the establishment it was
// collected at, the shape most comparison queries work with.
type EstablishmentPrice struct {
	Observation   PriceObservation `json:"preco"`
	Establishment Establishment    `json:"estabelecimento"`
}

// ShoppingList groups items a user intends to buy. Lists are soft-deleted by
// clearing the active flag.
type ShoppingList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"data_criacao"`
	Active    bool      `json:"ativa"`
}

// ShoppingListItem links a product to a list with a quantity.
type ShoppingListItem struct {
	ID        int64 `json:"id"`
	ListID    int64 `json:"lista_id"`
	ProductID int64 `json:"produto_id"`
	Quantity  int   `json:"quantidade"`
	Purchased bool  `json:"comprado"`
}

// ListItemDetail joins a list item with its product.
type ListItemDetail struct {
	Item    ShoppingListItem `json:"item"`
	Product Product          `json:"produto"`
}
