package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/promoprecio/backend/internal/domain"
)

// Field length limits mirror the catalog schema.
const (
	maxDescriptionLength = 200
	maxNameLength        = 100
)

// CatalogService handles product, establishment and price registration with
// input validation.
type CatalogService struct {
	products       domain.ProductRepository
	establishments domain.EstablishmentRepository
	prices         domain.PriceRepository
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	products domain.ProductRepository,
	establishments domain.EstablishmentRepository,
	prices domain.PriceRepository,
) *CatalogService {
	return &CatalogService{
		products:       products,
		establishments: establishments,
		prices:         prices,
	}
}

// CreateProduct registers a product. The EAN, when present, is normalized to
// its 13 digits.
func (s *CatalogService) CreateProduct(ctx context.Context, description, ean string) (*domain.Product, error) {
	description = strings.TrimSpace(description)
	if err := validateProductFields(description, ean); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Description: description,
		EAN:         domain.NormalizeDigits(ean),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns all products.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// UpdateProduct edits a product's description and EAN.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, description, ean string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if err := validateProductFields(description, ean); err != nil {
		return nil, err
	}

	product.Description = description
	product.EAN = domain.NormalizeDigits(ean)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product. Its price observations cascade.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// CreateEstablishment registers a store. Neighborhood and city are required;
// the CNPJ, when present, is normalized to its 14 digits.
func (s *CatalogService) CreateEstablishment(ctx context.Context, name, cnpj, neighborhood, city string) (*domain.Establishment, error) {
	name = strings.TrimSpace(name)
	neighborhood = strings.TrimSpace(neighborhood)
	city = strings.TrimSpace(city)
	if err := validateEstablishmentFields(name, cnpj, neighborhood, city); err != nil {
		return nil, err
	}

	establishment := &domain.Establishment{
		Name:         name,
		CNPJ:         domain.NormalizeDigits(cnpj),
		Neighborhood: neighborhood,
		City:         city,
	}
	if err := s.establishments.Create(ctx, establishment); err != nil {
		return nil, err
	}
	return establishment, nil
}

// GetEstablishment returns one establishment by id.
func (s *CatalogService) GetEstablishment(ctx context.Context, id int64) (*domain.Establishment, error) {
	return s.establishments.GetByID(ctx, id)
}

// ListEstablishments returns all establishments.
func (s *CatalogService) ListEstablishments(ctx context.Context) ([]domain.Establishment, error) {
	return s.establishments.List(ctx)
}

// UpdateEstablishment edits an establishment.
func (s *CatalogService) UpdateEstablishment(ctx context.Context, id int64, name, cnpj, neighborhood, city string) (*domain.Establishment, error) {
	establishment, err := s.establishments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	neighborhood = strings.TrimSpace(neighborhood)
	city = strings.TrimSpace(city)
	if err := validateEstablishmentFields(name, cnpj, neighborhood, city); err != nil {
		return nil, err
	}

	establishment.Name = name
	establishment.CNPJ = domain.NormalizeDigits(cnpj)
	establishment.Neighborhood = neighborhood
	establishment.City = city
	if err := s.establishments.Update(ctx, establishment); err != nil {
		return nil, err
	}
	return establishment, nil
}

// DeleteEstablishment removes an establishment. Its price observations
// cascade.
func (s *CatalogService) DeleteEstablishment(ctx context.Context, id int64) error {
	if _, err := s.establishments.GetByID(ctx, id); err != nil {
		return err
	}
	return s.establishments.Delete(ctx, id)
}

// RecordPrice registers a price observation. The value must be strictly
// positive and both references must exist. Collection time defaults to the
// observation time.
func (s *CatalogService) RecordPrice(
	ctx context.Context,
	productID, establishmentID int64,
	value decimal.Decimal,
	collectedAt *time.Time,
	observer string,
) (*domain.PriceObservation, error) {
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: price value must be positive", domain.ErrValidation)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.establishments.GetByID(ctx, establishmentID); err != nil {
		return nil, err
	}

	observation := &domain.PriceObservation{
		ProductID:       productID,
		EstablishmentID: establishmentID,
		Value:           value,
		CollectedAt:     time.Now(),
		Observer:        observer,
	}
	if collectedAt != nil {
		observation.CollectedAt = *collectedAt
	}

	if err := s.prices.Create(ctx, observation); err != nil {
		return nil, err
	}
	return observation, nil
}

func validateProductFields(description, ean string) error {
	if description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if len([]rune(description)) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, maxDescriptionLength)
	}
	if !domain.ValidEAN(ean) {
		return fmt.Errorf("%w: EAN must have exactly 13 digits", domain.ErrValidation)
	}
	return nil
}

func validateEstablishmentFields(name, cnpj, neighborhood, city string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len([]rune(name)) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", domain.ErrValidation, maxNameLength)
	}
	if neighborhood == "" {
		return fmt.Errorf("%w: neighborhood is required", domain.ErrValidation)
	}
	if city == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if !domain.ValidCNPJ(cnpj) {
		return fmt.Errorf("%w: CNPJ must have exactly 14 digits", domain.ErrValidation)
	}
	return nil
}
