package customers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrEmailInUse é retornado quando já existe um cliente com o e-mail informado
var ErrEmailInUse = errors.New("email address already used")

// UseCase contém a lógica de negócio de clientes
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

// CreateCustomer cria um novo cliente, rejeitando e-mails duplicados
func (uc *UseCase) CreateCustomer(ctx context.Context, name, email string) (*Customer, error) {
	existing, err := uc.repository.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	customer := NewCustomer(name, email)
	if err := uc.repository.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	uc.logger.Info("customer created",
		zap.String("customer_id", customer.ID),
		zap.String("email", customer.Email),
	)
	return customer, nil
}

// GetCustomer busca um cliente pelo ID
func (uc *UseCase) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return uc.repository.FindByID(ctx, customerID)
}
