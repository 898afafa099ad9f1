package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promoprecio/backend/internal/domain"
)

// ShoppingListRepository persists shopping lists and their items in postgres.
type ShoppingListRepository struct {
	db *pgxpool.Pool
}

// NewShoppingListRepository creates a shopping list repository over the given
// pool.
func NewShoppingListRepository(db *pgxpool.Pool) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

func (r *ShoppingListRepository) CreateList(ctx context.Context, l *domain.ShoppingList) error {
	query := `
		INSERT INTO listas (nome, ativa)
		VALUES ($1, $2)
		RETURNING id, data_criacao
	`
	return r.db.QueryRow(ctx, query, l.Name, l.Active).Scan(&l.ID, &l.CreatedAt)
}

func (r *ShoppingListRepository) GetList(ctx context.Context, id int64) (*domain.ShoppingList, error) {
	query := `
		SELECT id, nome, data_criacao, ativa
		FROM listas
		WHERE id = $1 AND ativa
	`
	var l domain.ShoppingList
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name, &l.CreatedAt, &l.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: list %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ShoppingListRepository) ListLists(ctx context.Context) ([]domain.ShoppingList, error) {
	query := `
		SELECT id, nome, data_criacao, ativa
		FROM listas
		WHERE ativa
		ORDER BY data_criacao DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.ShoppingList
	for rows.Next() {
		var l domain.ShoppingList
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.Active); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *ShoppingListRepository) DeactivateList(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE listas SET ativa = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: list %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ShoppingListRepository) AddItem(ctx context.Context, item *domain.ShoppingListItem) error {
	query := `
		INSERT INTO itens_lista (lista_id, produto_id, quantidade, comprado)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(
		ctx,
		query,
		item.ListID,
		item.ProductID,
		item.Quantity,
		item.Purchased,
	).Scan(&item.ID)
}

func (r *ShoppingListRepository) GetItem(ctx context.Context, listID, itemID int64) (*domain.ShoppingListItem, error) {
	query := `
		SELECT id, lista_id, produto_id, quantidade, comprado
		FROM itens_lista
		WHERE id = $1 AND lista_id = $2
	`
	var item domain.ShoppingListItem
	err := r.db.QueryRow(ctx, query, itemID, listID).
		Scan(&item.ID, &item.ListID, &item.ProductID, &item.Quantity, &item.Purchased)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingListRepository) GetItemByProduct(ctx context.Context, listID, productID int64) (*domain.ShoppingListItem, error) {
	query := `
		SELECT id, lista_id, produto_id, quantidade, comprado
		FROM itens_lista
		WHERE lista_id = $1 AND produto_id = $2
	`
	var item domain.ShoppingListItem
	err := r.db.QueryRow(ctx, query, listID, productID).
		Scan(&item.ID, &item.ListID, &item.ProductID, &item.Quantity, &item.Purchased)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: item for product %d", domain.ErrNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingListRepository) UpdateItem(ctx context.Context, item *domain.ShoppingListItem) error {
	query := `
		UPDATE itens_lista
		SET quantidade = $2, comprado = $3
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, item.ID, item.Quantity, item.Purchased)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, item.ID)
	}
	return nil
}

func (r *ShoppingListRepository) DeleteItem(ctx context.Context, listID, itemID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM itens_lista WHERE id = $1 AND lista_id = $2`, itemID, listID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, itemID)
	}
	return nil
}

func (r *ShoppingListRepository) ItemsWithProducts(ctx context.Context, listID int64) ([]domain.ListItemDetail, error) {
	query := `
		SELECT i.id, i.lista_id, i.produto_id, i.quantidade, i.comprado,
		       p.id, p.descricao, p.ean
		FROM itens_lista i
		JOIN produtos p ON p.id = i.produto_id
		WHERE i.lista_id = $1
		ORDER BY i.id
	`
	rows, err := r.db.Query(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ListItemDetail
	for rows.Next() {
		var d domain.ListItemDetail
		if err := rows.Scan(
			&d.Item.ID,
			&d.Item.ListID,
			&d.Item.ProductID,
			&d.Item.Quantity,
			&d.Item.Purchased,
			&d.Product.ID,
			&d.Product.Description,
			&d.Product.EAN,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
