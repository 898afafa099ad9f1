package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/promoprecio/backend/internal/domain"
	"github.com/promoprecio/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	search  *usecase.SearchService
	prices  *usecase.PriceService
	lists   *usecase.ListService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	search *usecase.SearchService,
	prices *usecase.PriceService,
	lists *usecase.ListService,
) *Handler {
	return &Handler{
		catalog: catalog,
		search:  search,
		prices:  prices,
		lists:   lists,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "promoprecio-backend",
		"version": "1.0.0",
	})
}

// respondError maps domain errors to HTTP status codes. Anything that is not
// a validation or not-found error is logged and reported as a generic 500 so
// internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses a numeric path parameter. A non-numeric id is a client error.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// --- Products ---

type productRequest struct {
	Description string `json:"descricao"`
	EAN         string `json:"ean"`
}

// CreateProduct registers a product in the catalog
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req.Description, req.EAN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns the full product catalog
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product by id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct replaces a product's fields
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, req.Description, req.EAN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and, by cascade, its price observations
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Establishments ---

type establishmentRequest struct {
	Name         string `json:"nome"`
	CNPJ         string `json:"cnpj"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
}

// CreateEstablishment registers a store
func (h *Handler) CreateEstablishment(c *gin.Context) {
	var req establishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	est, err := h.catalog.CreateEstablishment(c.Request.Context(), req.Name, req.CNPJ, req.Neighborhood, req.City)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, est)
}

// ListEstablishments returns every registered store
func (h *Handler) ListEstablishments(c *gin.Context) {
	establishments, err := h.catalog.ListEstablishments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishments)
}

// GetEstablishment returns one store by id
func (h *Handler) GetEstablishment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	est, err := h.catalog.GetEstablishment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// UpdateEstablishment replaces a store's fields
func (h *Handler) UpdateEstablishment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req establishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	est, err := h.catalog.UpdateEstablishment(c.Request.Context(), id, req.Name, req.CNPJ, req.Neighborhood, req.City)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// DeleteEstablishment removes a store and cascades to its observations
func (h *Handler) DeleteEstablishment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteEstablishment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Prices ---

type priceRequest struct {
	ProductID       int64           `json:"produto_id"`
	EstablishmentID int64           `json:"estabelecimento_id"`
	Value           decimal.Decimal `json:"valor"`
	CollectedAt     *time.Time      `json:"data_coleta"`
	Observer        string          `json:"observador"`
}

// RecordPrice registers a price observation
func (h *Handler) RecordPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	observation, err := h.catalog.RecordPrice(
		c.Request.Context(),
		req.ProductID,
		req.EstablishmentID,
		req.Value,
		req.CollectedAt,
		req.Observer,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, observation)
}

// ListPrices returns observations filtered by product, establishment and
// value range
func (h *Handler) ListPrices(c *gin.Context) {
	filter := domain.PriceFilter{}

	if raw := c.Query("produto_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid produto_id"})
			return
		}
		filter.ProductID = id
	}
	if raw := c.Query("estabelecimento_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid estabelecimento_id"})
			return
		}
		filter.EstablishmentID = id
	}
	if raw := c.Query("preco_min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preco_min"})
			return
		}
		filter.MinValue = &min
	}
	if raw := c.Query("preco_max"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preco_max"})
			return
		}
		filter.MaxValue = &max
	}

	prices, err := h.prices.ListPrices(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

// --- Search and comparison ---

// SearchProducts handles catalog search with fuzzy fallback
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.search.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// SearchEstablishments handles store search with fuzzy fallback
func (h *Handler) SearchEstablishments(c *gin.Context) {
	establishments, err := h.search.SearchEstablishments(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, establishments)
}

// CompareByTerm returns price comparisons for every product matching a
// search term. Products with no observations are omitted.
func (h *Handler) CompareByTerm(c *gin.Context) {
	results, err := h.prices.CompareByTerm(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// CompareProduct returns the comparative report for one product, in the
// format selected by formato
func (h *Handler) CompareProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := h.prices.ComparativeReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	renderReport(c, report)
}

// PriceHistory returns the time-windowed observation history for a product,
// newest first, in the format selected by formato
func (h *Handler) PriceHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	days := 0
	if raw := c.Query("dias"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dias"})
			return
		}
		days = parsed
	}

	history, err := h.prices.History(c.Request.Context(), id, days)
	if err != nil {
		respondError(c, err)
		return
	}

	renderHistory(c, id, history)
}

// --- Shopping lists ---

type listRequest struct {
	Name string `json:"nome"`
}

type listItemRequest struct {
	ProductID int64 `json:"produto_id"`
	Quantity  int   `json:"quantidade"`
}

type listItemUpdateRequest struct {
	Quantity  *int  `json:"quantidade"`
	Purchased *bool `json:"comprado"`
}

// CreateList creates a shopping list
func (h *Handler) CreateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.lists.CreateList(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// ListLists returns every active shopping list with purchase progress
func (h *Handler) ListLists(c *gin.Context) {
	lists, err := h.lists.ListLists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetList returns a list with its items and each item's lowest price
func (h *Handler) GetList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.lists.GetList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeactivateList soft-deletes a shopping list
func (h *Handler) DeactivateList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.lists.DeactivateList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddListItem adds a product to a list, accumulating quantity on repeats
func (h *Handler) AddListItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req listItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.lists.AddItem(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateListItem changes an item's quantity or purchased flag
func (h *Handler) UpdateListItem(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	var req listItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.lists.UpdateItem(c.Request.Context(), listID, itemID, req.Quantity, req.Purchased)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveListItem removes an item from a list
func (h *Handler) RemoveListItem(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	if err := h.lists.RemoveItem(c.Request.Context(), listID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompareList compares the whole basket across establishments, in the
// format selected by formato
func (h *Handler) CompareList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comparison, err := h.lists.CompareBasket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	renderBasket(c, comparison)
}
