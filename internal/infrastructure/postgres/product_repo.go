package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promoprecio/backend/internal/domain"
)

// ProductRepository persists products in postgres.
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a product repository over the given pool.
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO produtos (descricao, ean)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, p.Description, p.EAN).Scan(&p.ID)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, descricao, ean
		FROM produtos
		WHERE id = $1
	`
	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Description, &p.EAN)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE produtos
		SET descricao = $2, ean = $3
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, p.ID, p.Description, p.EAN)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, p.ID)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, descricao, ean
		FROM produtos
		ORDER BY descricao
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) SearchSubstring(ctx context.Context, term string) ([]domain.Product, error) {
	query := `
		SELECT id, descricao, ean
		FROM produtos
		WHERE descricao ILIKE '%' || $1 || '%'
		   OR ean ILIKE '%' || $1 || '%'
		ORDER BY descricao
	`
	rows, err := r.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) AllDescriptions(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT descricao
		FROM produtos
		ORDER BY id
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descriptions []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		descriptions = append(descriptions, d)
	}
	return descriptions, rows.Err()
}

func (r *ProductRepository) FindByDescriptions(ctx context.Context, descriptions []string) ([]domain.Product, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, descricao, ean
		FROM produtos
		WHERE descricao = ANY($1)
		ORDER BY descricao
	`
	rows, err := r.db.Query(ctx, query, descriptions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Description, &p.EAN); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
