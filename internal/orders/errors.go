package orders

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound é retornado quando o pedido não existe
var ErrNotFound = errors.New("order not found")

// CustomerNotFoundError indica que o cliente informado não existe
type CustomerNotFoundError struct {
	CustomerID string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer not found with id %s", e.CustomerID)
}

// ProductsNotFoundError indica que um ou mais produtos do pedido não existem
type ProductsNotFoundError struct {
	MissingIDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("some products were not found: %s", strings.Join(e.MissingIDs, ", "))
}

// InsufficientStockError indica que a quantidade pedida excede o estoque
// disponível do produto
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("the quantity %d is not available for product %s (%d in stock)",
		e.Requested, e.ProductID, e.Available)
}

// IsBusinessError informa se o erro pertence à taxonomia de regras de
// negócio do workflow de pedidos
func IsBusinessError(err error) bool {
	var customerNotFound *CustomerNotFoundError
	var productsNotFound *ProductsNotFoundError
	var insufficientStock *InsufficientStockError
	return errors.As(err, &customerNotFound) ||
		errors.As(err, &productsNotFound) ||
		errors.As(err, &insufficientStock)
}
