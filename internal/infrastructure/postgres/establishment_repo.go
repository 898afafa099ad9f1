package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promoprecio/backend/internal/domain"
)

// EstablishmentRepository persists establishments in postgres.
type EstablishmentRepository struct {
	db *pgxpool.Pool
}

// NewEstablishmentRepository creates an establishment repository over the
// given pool.
func NewEstablishmentRepository(db *pgxpool.Pool) *EstablishmentRepository {
	return &EstablishmentRepository{db: db}
}

func (r *EstablishmentRepository) Create(ctx context.Context, e *domain.Establishment) error {
	query := `
		INSERT INTO estabelecimentos (nome, cnpj, bairro, cidade)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, e.Name, e.CNPJ, e.Neighborhood, e.City).Scan(&e.ID)
}

func (r *EstablishmentRepository) GetByID(ctx context.Context, id int64) (*domain.Establishment, error) {
	query := `
		SELECT id, nome, cnpj, bairro, cidade
		FROM estabelecimentos
		WHERE id = $1
	`
	var e domain.Establishment
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.CNPJ, &e.Neighborhood, &e.City)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: establishment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EstablishmentRepository) Update(ctx context.Context, e *domain.Establishment) error {
	query := `
		UPDATE estabelecimentos
		SET nome = $2, cnpj = $3, bairro = $4, cidade = $5
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, e.ID, e.Name, e.CNPJ, e.Neighborhood, e.City)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: establishment %d", domain.ErrNotFound, e.ID)
	}
	return nil
}

func (r *EstablishmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM estabelecimentos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: establishment %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *EstablishmentRepository) List(ctx context.Context) ([]domain.Establishment, error) {
	query := `
		SELECT id, nome, cnpj, bairro, cidade
		FROM estabelecimentos
		ORDER BY nome
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishments(rows)
}

func (r *EstablishmentRepository) SearchSubstring(ctx context.Context, term string) ([]domain.Establishment, error) {
	query := `
		SELECT id, nome, cnpj, bairro, cidade
		FROM estabelecimentos
		WHERE nome ILIKE '%' || $1 || '%'
		   OR bairro ILIKE '%' || $1 || '%'
		   OR cidade ILIKE '%' || $1 || '%'
		   OR cnpj ILIKE '%' || $1 || '%'
		ORDER BY nome
	`
	rows, err := r.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishments(rows)
}

func (r *EstablishmentRepository) AllNames(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT nome
		FROM estabelecimentos
		ORDER BY id
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *EstablishmentRepository) FindByNames(ctx context.Context, names []string) ([]domain.Establishment, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, nome, cnpj, bairro, cidade
		FROM estabelecimentos
		WHERE nome = ANY($1)
		ORDER BY nome
	`
	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishments(rows)
}

func scanEstablishments(rows pgx.Rows) ([]domain.Establishment, error) {
	var establishments []domain.Establishment
	for rows.Next() {
		var e domain.Establishment
		if err := rows.Scan(&e.ID, &e.Name, &e.CNPJ, &e.Neighborhood, &e.City); err != nil {
			return nil, err
		}
		establishments = append(establishments, e)
	}
	return establishments, rows.Err()
}
