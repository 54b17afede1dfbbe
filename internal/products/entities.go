package products

import (
	"time"

	"github.com/google/uuid"
)

// Product representa um produto com preço e estoque disponível
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name string, price float64, quantity int) *Product {
	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// QuantityUpdate representa o novo estoque de um produto após um pedido
type QuantityUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
