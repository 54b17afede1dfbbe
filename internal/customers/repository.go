package customers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound é retornado quando o cliente não existe
var ErrNotFound = errors.New("customer not found")

// Repository define a interface para operações de banco de dados de clientes
type Repository interface {
	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, customerID string) (*Customer, error)

	// FindByEmail busca um cliente pelo e-mail
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Create insere um novo cliente
	Create(ctx context.Context, customer *Customer) error
}

// CustomerRepository implementa Repository usando PostgreSQL
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) Repository {
	return &CustomerRepository{
		db: db,
	}
}

// FindByID busca um cliente pelo ID
func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE id = $1
	`, customerID).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail busca um cliente pelo e-mail
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE email = $1
	`, email).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create insere um novo cliente
func (r *CustomerRepository) Create(ctx context.Context, customer *Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, customer.ID, customer.Name, customer.Email, customer.CreatedAt, customer.UpdatedAt)
	return err
}
