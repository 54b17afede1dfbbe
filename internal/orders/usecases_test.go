package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/ecommstack/store-api/internal/customers"
	"github.com/ecommstack/store-api/internal/products"
	"github.com/ecommstack/store-api/internal/storage"
)

// MockTx simula a transação do workflow
type MockTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *MockTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *MockTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

// MockOrderRepository simula o repositório de pedidos
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (storage.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(storage.Tx)
	return tx, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx storage.Tx, order *Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	order, _ := args.Get(0).(*Order)
	return order, args.Error(1)
}

// MockProductRepository simula o repositório de produtos
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *products.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*products.Product, error) {
	args := m.Called(ctx, name)
	product, _ := args.Get(0).(*products.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]products.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]products.Product)
	return list, args.Error(1)
}

func (m *MockProductRepository) FindAllByIDsForUpdate(ctx context.Context, tx storage.Tx, ids []string) ([]products.Product, error) {
	args := m.Called(ctx, tx, ids)
	list, _ := args.Get(0).([]products.Product)
	return list, args.Error(1)
}

func (m *MockProductRepository) UpdateQuantities(ctx context.Context, tx storage.Tx, updates []products.QuantityUpdate) error {
	args := m.Called(ctx, tx, updates)
	return args.Error(0)
}

// MockCustomerRepository simula o repositório de clientes
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID string) (*customers.Customer, error) {
	args := m.Called(ctx, customerID)
	customer, _ := args.Get(0).(*customers.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customers.Customer, error) {
	args := m.Called(ctx, email)
	customer, _ := args.Get(0).(*customers.Customer)
	return customer, args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *customers.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type placeOrderFixture struct {
	useCase   *UseCase
	orders    *MockOrderRepository
	products  *MockProductRepository
	customers *MockCustomerRepository
	tx        *MockTx
}

func newPlaceOrderFixture() *placeOrderFixture {
	ordersRepo := new(MockOrderRepository)
	productsRepo := new(MockProductRepository)
	customersRepo := new(MockCustomerRepository)

	return &placeOrderFixture{
		useCase:   NewUseCase(ordersRepo, productsRepo, customersRepo, zap.NewNop()),
		orders:    ordersRepo,
		products:  productsRepo,
		customers: customersRepo,
		tx:        &MockTx{},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1", Name: "Ana", Email: "ana@example.com"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).
		Return([]products.Product{{ID: "product-1", Price: 5.0, Quantity: 10}}, nil)
	f.orders.On("Create", ctx, f.tx, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.products.On("UpdateQuantities", ctx, f.tx,
		[]products.QuantityUpdate{{ID: "product-1", Quantity: 7}}).Return(nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 3},
	})

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "customer-1", order.CustomerID)
	assert.Len(t, order.OrderProducts, 1)
	assert.Equal(t, "product-1", order.OrderProducts[0].ProductID)
	assert.Equal(t, 3, order.OrderProducts[0].Quantity)
	assert.Equal(t, 5.0, order.OrderProducts[0].Price)
	assert.NotEmpty(t, order.OrderProducts[0].ID)
	assert.True(t, f.tx.committed)
	assert.False(t, f.tx.rolledBack)
	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.customers.AssertExpectations(t)
}

func TestPlaceOrder_CustomerNotFound(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "missing").Return(nil, customers.ErrNotFound)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "missing", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 1},
	})

	// Assert
	assert.Nil(t, order)
	var notFound *CustomerNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.CustomerID)
	// Nenhuma loja foi tocada além da leitura do cliente
	f.orders.AssertNotCalled(t, "BeginTx", mock.Anything)
	f.products.AssertNotCalled(t, "FindAllByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_ProductsNotFound(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1", "product-404"}).
		Return([]products.Product{{ID: "product-1", Price: 5.0, Quantity: 10}}, nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 1},
		{ProductID: "product-404", Quantity: 1},
	})

	// Assert
	assert.Nil(t, order)
	var notFound *ProductsNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"product-404"}, notFound.MissingIDs)
	assert.True(t, f.tx.rolledBack)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "UpdateQuantities", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).
		Return([]products.Product{{ID: "product-1", Price: 5.0, Quantity: 2}}, nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 5},
	})

	// Assert
	assert.Nil(t, order)
	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "product-1", insufficient.ProductID)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)
	assert.True(t, f.tx.rolledBack)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InsufficientStockReportsFirstOffender(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-a", "product-b"}).
		Return([]products.Product{
			{ID: "product-a", Price: 1.0, Quantity: 0},
			{ID: "product-b", Price: 1.0, Quantity: 0},
		}, nil)

	// Act
	_, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-a", Quantity: 1},
		{ProductID: "product-b", Quantity: 1},
	})

	// Assert: ambos violam, mas só o primeiro da entrada é reportado
	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "product-a", insufficient.ProductID)
}

func TestPlaceOrder_DuplicateLinesAggregateDemand(t *testing.T) {
	// Arrange: duas linhas de 6 contra estoque 10 devem somar 12 e falhar
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).
		Return([]products.Product{{ID: "product-1", Price: 5.0, Quantity: 10}}, nil)

	// Act
	_, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 6},
		{ProductID: "product-1", Quantity: 6},
	})

	// Assert
	var insufficient *InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 12, insufficient.Requested)
	assert.Equal(t, 10, insufficient.Available)
}

func TestPlaceOrder_DuplicateLinesDecrementOnce(t *testing.T) {
	// Arrange: linhas 3 + 4 do mesmo produto viram um único decremento para 3
	f := newPlaceOrderFixture()
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).
		Return([]products.Product{{ID: "product-1", Price: 2.5, Quantity: 10}}, nil)
	f.orders.On("Create", ctx, f.tx, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.products.On("UpdateQuantities", ctx, f.tx,
		[]products.QuantityUpdate{{ID: "product-1", Quantity: 3}}).Return(nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 3},
		{ProductID: "product-1", Quantity: 4},
	})

	// Assert: as duas linhas são persistidas, cada uma com o preço capturado
	assert.NoError(t, err)
	assert.Len(t, order.OrderProducts, 2)
	assert.Equal(t, 2.5, order.OrderProducts[0].Price)
	assert.Equal(t, 2.5, order.OrderProducts[1].Price)
	f.products.AssertExpectations(t)
}

func TestPlaceOrder_PriceSnapshot(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()

	resolved := []products.Product{{ID: "product-1", Price: 9.99, Quantity: 5}}
	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).Return(resolved, nil)
	f.orders.On("Create", ctx, f.tx, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.products.On("UpdateQuantities", ctx, f.tx, mock.Anything).Return(nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 2},
	})

	// Assert: o preço fica congelado no item mesmo que o produto mude depois
	assert.NoError(t, err)
	resolved[0].Price = 19.99
	assert.Equal(t, 9.99, order.OrderProducts[0].Price)
}

func TestPlaceOrder_CommitFailureIsInfrastructureError(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	f.tx.commitErr = errors.New("connection reset")
	ctx := context.Background()

	f.customers.On("FindByID", ctx, "customer-1").
		Return(&customers.Customer{ID: "customer-1"}, nil)
	f.orders.On("BeginTx", ctx).Return(f.tx, nil)
	f.products.On("FindAllByIDsForUpdate", ctx, f.tx, []string{"product-1"}).
		Return([]products.Product{{ID: "product-1", Price: 5.0, Quantity: 10}}, nil)
	f.orders.On("Create", ctx, f.tx, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.products.On("UpdateQuantities", ctx, f.tx, mock.Anything).Return(nil)

	// Act
	order, err := f.useCase.PlaceOrder(ctx, "customer-1", []PlaceOrderItem{
		{ProductID: "product-1", Quantity: 1},
	})

	// Assert: falha de infraestrutura nunca vira erro de negócio
	assert.Nil(t, order)
	assert.Error(t, err)
	assert.False(t, IsBusinessError(err))
}

func TestGetOrder(t *testing.T) {
	// Arrange
	f := newPlaceOrderFixture()
	ctx := context.Background()
	expected := &Order{ID: "order-1", CustomerID: "customer-1"}

	f.orders.On("FindByID", ctx, "order-1").Return(expected, nil)

	// Act
	order, err := f.useCase.GetOrder(ctx, "order-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, order)
	f.orders.AssertExpectations(t)
}
