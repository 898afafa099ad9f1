package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/promoprecio/backend/internal/domain"
)

func catalogFixture(t *testing.T) (*CatalogService, *fakeProductRepo, *fakeEstablishmentRepo, *fakePriceRepo) {
	t.Helper()
	products := newFakeProductRepo()
	establishments := newFakeEstablishmentRepo()
	prices := newFakePriceRepo(establishments)
	return NewCatalogService(products, establishments, prices), products, establishments, prices
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		product, err := svc.CreateProduct(ctx, "Arroz Tio João 1kg", "1234567890123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.ID == 0 {
			t.Error("product id not assigned")
		}
	})

	t.Run("EAN is optional", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		if _, err := svc.CreateProduct(ctx, "Feijão Preto 1kg", ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("short EAN is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		_, err := svc.CreateProduct(ctx, "Café 500g", "12345")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("formatted EAN is normalized to digits", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		product, err := svc.CreateProduct(ctx, "Leite 1l", "123.456.789-0123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.EAN != "1234567890123" {
			t.Errorf("EAN = %q, want normalized digits", product.EAN)
		}
	})

	t.Run("missing description is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		if _, err := svc.CreateProduct(ctx, "   ", ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("description over 200 characters is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		long := strings.Repeat("a", 201)
		if _, err := svc.CreateProduct(ctx, long, ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func TestCreateEstablishment(t *testing.T) {
	ctx := context.Background()

	t.Run("valid establishment", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		est, err := svc.CreateEstablishment(ctx, "Mercado Central", "12345678901234", "Centro", "Recife")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est.ID == 0 {
			t.Error("establishment id not assigned")
		}
	})

	t.Run("CNPJ is optional", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		if _, err := svc.CreateEstablishment(ctx, "Feira Livre", "", "Centro", "Recife"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("short CNPJ is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		_, err := svc.CreateEstablishment(ctx, "Mercadinho", "1234", "Centro", "Recife")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("missing neighborhood is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		_, err := svc.CreateEstablishment(ctx, "Mercadinho", "", "", "Recife")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("missing city is a validation error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		_, err := svc.CreateEstablishment(ctx, "Mercadinho", "", "Centro", "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}

func TestRecordPrice(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*CatalogService, int64, int64) {
		svc, _, _, _ := catalogFixture(t)
		product, err := svc.CreateProduct(ctx, "Arroz 1kg", "")
		if err != nil {
			t.Fatal(err)
		}
		est, err := svc.CreateEstablishment(ctx, "Mercado", "", "Centro", "Recife")
		if err != nil {
			t.Fatal(err)
		}
		return svc, product.ID, est.ID
	}

	t.Run("records with current time by default", func(t *testing.T) {
		svc, productID, estID := setup(t)
		before := time.Now()
		obs, err := svc.RecordPrice(ctx, productID, estID, decimal.RequireFromString("8.00"), nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if obs.CollectedAt.Before(before) {
			t.Errorf("CollectedAt = %v, want defaulted to observation time", obs.CollectedAt)
		}
	})

	t.Run("explicit collection time is kept", func(t *testing.T) {
		svc, productID, estID := setup(t)
		ts := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
		obs, err := svc.RecordPrice(ctx, productID, estID, decimal.RequireFromString("8.00"), &ts, "ana")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !obs.CollectedAt.Equal(ts) {
			t.Errorf("CollectedAt = %v, want %v", obs.CollectedAt, ts)
		}
		if obs.Observer != "ana" {
			t.Errorf("Observer = %q, want ana", obs.Observer)
		}
	})

	t.Run("zero price is a validation error", func(t *testing.T) {
		svc, productID, estID := setup(t)
		_, err := svc.RecordPrice(ctx, productID, estID, decimal.Zero, nil, "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("negative price is a validation error", func(t *testing.T) {
		svc, productID, estID := setup(t)
		_, err := svc.RecordPrice(ctx, productID, estID, decimal.RequireFromString("-1.00"), nil, "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown product is a not-found error", func(t *testing.T) {
		svc, _, estID := setup(t)
		_, err := svc.RecordPrice(ctx, 999, estID, decimal.RequireFromString("8.00"), nil, "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown establishment is a not-found error", func(t *testing.T) {
		svc, productID, _ := setup(t)
		_, err := svc.RecordPrice(ctx, productID, 999, decimal.RequireFromString("8.00"), nil, "")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update product keeps id", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		product, _ := svc.CreateProduct(ctx, "Arroz 1kg", "")
		updated, err := svc.UpdateProduct(ctx, product.ID, "Arroz Integral 1kg", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ID != product.ID || updated.Description != "Arroz Integral 1kg" {
			t.Errorf("updated = %+v", updated)
		}
	})

	t.Run("delete unknown product is a not-found error", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		if err := svc.DeleteProduct(ctx, 5); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update establishment validates fields", func(t *testing.T) {
		svc, _, _, _ := catalogFixture(t)
		est, _ := svc.CreateEstablishment(ctx, "Mercado", "", "Centro", "Recife")
		_, err := svc.UpdateEstablishment(ctx, est.ID, "Mercado", "123", "Centro", "Recife")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}
