package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecommstack/store-api/internal/storage"
)

// ErrNotFound é retornado quando o produto não existe
var ErrNotFound = errors.New("product not found")

// Repository define a interface para operações de banco de dados de produtos
type Repository interface {
	// Create insere um novo produto
	Create(ctx context.Context, product *Product) error

	// FindByName busca um produto pelo nome
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll lista todos os produtos
	FindAll(ctx context.Context) ([]Product, error)

	// FindAllByIDsForUpdate busca os produtos informados com lock pessimista
	// (SELECT FOR UPDATE) dentro da transação
	FindAllByIDsForUpdate(ctx context.Context, tx storage.Tx, ids []string) ([]Product, error)

	// UpdateQuantities aplica as novas quantidades de estoque dentro da transação
	UpdateQuantities(ctx context.Context, tx storage.Tx, updates []QuantityUpdate) error
}

// ProductRepository implementa Repository usando PostgreSQL
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create insere um novo produto
func (r *ProductRepository) Create(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, product.ID, product.Name, product.Price, product.Quantity, product.CreatedAt, product.UpdatedAt)
	return err
}

// FindByName busca um produto pelo nome
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE name = $1
	`, name).Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll lista todos os produtos
func (r *ProductRepository) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, product)
	}
	return list, rows.Err()
}

// FindAllByIDsForUpdate busca os produtos informados com lock pessimista (FOR UPDATE)
func (r *ProductRepository) FindAllByIDsForUpdate(ctx context.Context, tx storage.Tx, ids []string) ([]Product, error) {
	pgTx := tx.(*storage.PostgresTx).Unwrap()

	rows, err := pgTx.Query(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products with lock: %w", err)
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, product)
	}
	return list, rows.Err()
}

// UpdateQuantities aplica as novas quantidades de estoque dentro da transação
func (r *ProductRepository) UpdateQuantities(ctx context.Context, tx storage.Tx, updates []QuantityUpdate) error {
	pgTx := tx.(*storage.PostgresTx).Unwrap()

	batch := &pgx.Batch{}
	for _, update := range updates {
		batch.Queue(`
			UPDATE products
			SET quantity = $1, updated_at = NOW()
			WHERE id = $2
		`, update.Quantity, update.ID)
	}

	results := pgTx.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update product quantity: %w", err)
		}
	}
	return nil
}
