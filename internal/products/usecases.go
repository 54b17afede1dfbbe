package products

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNameInUse é retornado quando já existe um produto com o nome informado
var ErrNameInUse = errors.New("there is already one product with this name")

// UseCase contém a lógica de negócio de produtos
type UseCase struct {
	repository Repository
	logger     *zap.Logger
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository, logger *zap.Logger) *UseCase {
	return &UseCase{
		repository: repository,
		logger:     logger,
	}
}

// CreateProduct cria um novo produto, rejeitando nomes duplicados
func (uc *UseCase) CreateProduct(ctx context.Context, name string, price float64, quantity int) (*Product, error) {
	existing, err := uc.repository.FindByName(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if existing != nil {
		return nil, ErrNameInUse
	}

	product := NewProduct(name, price, quantity)
	if err := uc.repository.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	uc.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price),
		zap.Int("quantity", product.Quantity),
	)
	return product, nil
}

// ListProducts lista todos os produtos
func (uc *UseCase) ListProducts(ctx context.Context) ([]Product, error) {
	return uc.repository.FindAll(ctx)
}
