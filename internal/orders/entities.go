package orders

import (
	"time"

	"github.com/google/uuid"
)

// Order representa um pedido de um cliente com seus itens
type Order struct {
	ID            string         `json:"id" db:"id"`
	CustomerID    string         `json:"customer_id" db:"customer_id"`
	OrderProducts []OrderProduct `json:"order_products"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// OrderProduct representa um item do pedido com o preço capturado no
// momento da compra
type OrderProduct struct {
	ID        string  `json:"id" db:"id"`
	OrderID   string  `json:"-" db:"order_id"`
	ProductID string  `json:"product_id" db:"product_id"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// NewOrder cria uma nova instância de Order, gerando os IDs do pedido
// e de cada item
func NewOrder(customerID string, items []OrderProduct) *Order {
	now := time.Now()
	order := &Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	order.OrderProducts = make([]OrderProduct, 0, len(items))
	for _, item := range items {
		item.ID = uuid.New().String()
		item.OrderID = order.ID
		order.OrderProducts = append(order.OrderProducts, item)
	}
	return order
}

// Total soma o valor do pedido a partir dos preços capturados
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.OrderProducts {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
