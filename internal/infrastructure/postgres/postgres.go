// Package postgres implements the domain repositories over a pgx connection
// pool. Each logical write is a single statement, so the store's own
// transactional guarantees cover it; no repository holds a transaction open
// across calls.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// schema holds the catalog tables. Price observations cascade when their
// product or establishment is deleted.
const schema = `
CREATE TABLE IF NOT EXISTS produtos (
	id BIGSERIAL PRIMARY KEY,
	descricao VARCHAR(200) NOT NULL,
	ean VARCHAR(13) NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_produtos_descricao ON produtos (descricao);

CREATE TABLE IF NOT EXISTS estabelecimentos (
	id BIGSERIAL PRIMARY KEY,
	nome VARCHAR(100) NOT NULL,
	cnpj VARCHAR(14) NOT NULL DEFAULT '',
	bairro VARCHAR(100) NOT NULL,
	cidade VARCHAR(100) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_estabelecimentos_nome ON estabelecimentos (nome);

CREATE TABLE IF NOT EXISTS precos (
	id BIGSERIAL PRIMARY KEY,
	produto_id BIGINT NOT NULL REFERENCES produtos (id) ON DELETE CASCADE,
	estabelecimento_id BIGINT NOT NULL REFERENCES estabelecimentos (id) ON DELETE CASCADE,
	valor NUMERIC(10,2) NOT NULL CHECK (valor > 0),
	data_coleta TIMESTAMPTZ NOT NULL DEFAULT now(),
	observador VARCHAR(100) NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_precos_produto ON precos (produto_id);
CREATE INDEX IF NOT EXISTS idx_precos_estabelecimento ON precos (estabelecimento_id);
CREATE INDEX IF NOT EXISTS idx_precos_data_coleta ON precos (data_coleta);

CREATE TABLE IF NOT EXISTS listas (
	id BIGSERIAL PRIMARY KEY,
	nome VARCHAR(100) NOT NULL,
	data_criacao TIMESTAMPTZ NOT NULL DEFAULT now(),
	ativa BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS itens_lista (
	id BIGSERIAL PRIMARY KEY,
	lista_id BIGINT NOT NULL REFERENCES listas (id) ON DELETE CASCADE,
	produto_id BIGINT NOT NULL REFERENCES produtos (id) ON DELETE CASCADE,
	quantidade INTEGER NOT NULL CHECK (quantidade >= 1),
	comprado BOOLEAN NOT NULL DEFAULT FALSE,
	UNIQUE (lista_id, produto_id)
);
`

// EnsureSchema creates the catalog tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
