package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecommstack/store-api/internal/storage"
)

// Repository define a interface para operações de banco de dados de pedidos
type Repository interface {
	// BeginTx inicia a transação que engloba o workflow de criação de pedido
	BeginTx(ctx context.Context) (storage.Tx, error)

	// Create persiste o pedido e todos os seus itens dentro da transação
	Create(ctx context.Context, tx storage.Tx, order *Order) error

	// FindByID busca um pedido com seus itens
	FindByID(ctx context.Context, orderID string) (*Order, error)
}

// OrderRepository implementa Repository usando PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) Repository {
	return &OrderRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *OrderRepository) BeginTx(ctx context.Context) (storage.Tx, error) {
	return storage.Begin(ctx, r.db)
}

// Create persiste o pedido e todos os seus itens na mesma transação
func (r *OrderRepository) Create(ctx context.Context, tx storage.Tx, order *Order) error {
	pgTx := tx.(*storage.PostgresTx).Unwrap()

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.CustomerID, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range order.OrderProducts {
		batch.Queue(`
			INSERT INTO order_products (id, order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, item.OrderID, item.ProductID, item.Price, item.Quantity)
	}

	results := pgTx.SendBatch(ctx, batch)
	defer results.Close()

	for range order.OrderProducts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert order product: %w", err)
		}
	}
	return nil
}

// FindByID busca um pedido com seus itens
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, price, quantity
		FROM order_products WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderProduct
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		order.OrderProducts = append(order.OrderProducts, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}
