package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promoprecio/backend/internal/domain"
)

// PriceRepository persists price observations in postgres.
type PriceRepository struct {
	db *pgxpool.Pool
}

// NewPriceRepository creates a price repository over the given pool.
func NewPriceRepository(db *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) Create(ctx context.Context, o *domain.PriceObservation) error {
	query := `
		INSERT INTO precos (produto_id, estabelecimento_id, valor, data_coleta, observador)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRow(
		ctx,
		query,
		o.ProductID,
		o.EstablishmentID,
		o.Value,
		o.CollectedAt,
		o.Observer,
	).Scan(&o.ID)
}

const joinedColumns = `
	p.id, p.produto_id, p.estabelecimento_id, p.valor, p.data_coleta, p.observador,
	e.id, e.nome, e.cnpj, e.bairro, e.cidade
`

func (r *PriceRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.EstablishmentPrice, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM precos p
		JOIN estabelecimentos e ON e.id = p.estabelecimento_id
		WHERE p.produto_id = $1
		ORDER BY p.data_coleta DESC, p.id DESC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishmentPrices(rows)
}

func (r *PriceRepository) History(ctx context.Context, productID int64, since time.Time) ([]domain.EstablishmentPrice, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM precos p
		JOIN estabelecimentos e ON e.id = p.estabelecimento_id
		WHERE p.produto_id = $1 AND p.data_coleta >= $2
		ORDER BY p.data_coleta DESC, p.id DESC
	`
	rows, err := r.db.Query(ctx, query, productID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishmentPrices(rows)
}

func (r *PriceRepository) Filter(ctx context.Context, f domain.PriceFilter) ([]domain.EstablishmentPrice, error) {
	query := `
		SELECT ` + joinedColumns + `
		FROM precos p
		JOIN estabelecimentos e ON e.id = p.estabelecimento_id
		WHERE ($1 = 0 OR p.produto_id = $1)
		  AND ($2 = 0 OR p.estabelecimento_id = $2)
		  AND ($3::numeric IS NULL OR p.valor >= $3)
		  AND ($4::numeric IS NULL OR p.valor <= $4)
		ORDER BY p.data_coleta DESC, p.id DESC
	`
	rows, err := r.db.Query(ctx, query, f.ProductID, f.EstablishmentID, f.MinValue, f.MaxValue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEstablishmentPrices(rows)
}

func scanEstablishmentPrices(rows pgx.Rows) ([]domain.EstablishmentPrice, error) {
	var prices []domain.EstablishmentPrice
	for rows.Next() {
		var ep domain.EstablishmentPrice
		if err := rows.Scan(
			&ep.Observation.ID,
			&ep.Observation.ProductID,
			&ep.Observation.EstablishmentID,
			&ep.Observation.Value,
			&ep.Observation.CollectedAt,
			&ep.Observation.Observer,
			&ep.Establishment.ID,
			&ep.Establishment.Name,
			&ep.Establishment.CNPJ,
			&ep.Establishment.Neighborhood,
			&ep.Establishment.City,
		); err != nil {
			return nil, err
		}
		prices = append(prices, ep)
	}
	return prices, rows.Err()
}
