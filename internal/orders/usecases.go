package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecommstack/store-api/internal/customers"
	"github.com/ecommstack/store-api/internal/products"
)

// PlaceOrderItem representa uma linha do pedido solicitado pelo cliente
type PlaceOrderItem struct {
	ProductID string
	Quantity  int
}

// UseCase contém a lógica de negócio do workflow de criação de pedidos
type UseCase struct {
	orders    Repository
	products  products.Repository
	customers customers.Repository
	logger    *zap.Logger
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(
	orders Repository,
	products products.Repository,
	customers customers.Repository,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		orders:    orders,
		products:  products,
		customers: customers,
		logger:    logger,
	}
}

// PlaceOrder valida e persiste um novo pedido.
//
// A resolução dos produtos, a checagem de estoque, a gravação do pedido e o
// decremento das quantidades acontecem dentro de UMA transação, com lock
// pessimista (SELECT FOR UPDATE) nas linhas de produto. Pedidos concorrentes
// sobre o mesmo produto serializam no lock, então o estoque nunca fica
// negativo e nunca existe pedido gravado sem o decremento correspondente.
func (uc *UseCase) PlaceOrder(ctx context.Context, customerID string, items []PlaceOrderItem) (*Order, error) {
	customer, err := uc.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: customerID}
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	// IDs distintos na ordem de entrada, com a demanda agregada por produto.
	// Linhas duplicadas do mesmo produto contam juntas contra o estoque.
	distinctIDs := make([]string, 0, len(items))
	demand := make(map[string]int, len(items))
	for _, item := range items {
		if _, seen := demand[item.ProductID]; !seen {
			distinctIDs = append(distinctIDs, item.ProductID)
		}
		demand[item.ProductID] += item.Quantity
	}

	tx, err := uc.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	found, err := uc.products.FindAllByIDsForUpdate(ctx, tx, distinctIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	byID := make(map[string]products.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	if len(byID) != len(distinctIDs) {
		var missing []string
		for _, id := range distinctIDs {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &ProductsNotFoundError{MissingIDs: missing}
	}

	// First failure wins: reporta o primeiro produto sem estoque, na ordem
	// de entrada
	for _, id := range distinctIDs {
		product := byID[id]
		if demand[id] > product.Quantity {
			return nil, &InsufficientStockError{
				ProductID: id,
				Requested: demand[id],
				Available: product.Quantity,
			}
		}
	}

	// Price snapshot: cada item carrega o preço do produto neste momento
	orderItems := make([]OrderProduct, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, OrderProduct{
			ProductID: item.ProductID,
			Price:     byID[item.ProductID].Price,
			Quantity:  item.Quantity,
		})
	}

	order := NewOrder(customer.ID, orderItems)
	if err := uc.orders.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// O decremento parte dos itens persistidos, não da requisição, para
	// refletir exatamente o que foi gravado
	consumed := make(map[string]int, len(order.OrderProducts))
	for _, item := range order.OrderProducts {
		consumed[item.ProductID] += item.Quantity
	}

	updates := make([]products.QuantityUpdate, 0, len(distinctIDs))
	for _, id := range distinctIDs {
		updates = append(updates, products.QuantityUpdate{
			ID:       id,
			Quantity: byID[id].Quantity - consumed[id],
		})
	}

	if err := uc.products.UpdateQuantities(ctx, tx, updates); err != nil {
		return nil, fmt.Errorf("failed to update product quantities: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	uc.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int("items", len(order.OrderProducts)),
		zap.Float64("total", order.Total()),
	)
	return order, nil
}

// GetOrder busca um pedido com seus itens
func (uc *UseCase) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return uc.orders.FindByID(ctx, orderID)
}
