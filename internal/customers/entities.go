package customers

import (
	"time"

	"github.com/google/uuid"
)

// Customer representa um cliente da loja
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewCustomer cria uma nova instância de Customer
func NewCustomer(name, email string) *Customer {
	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
