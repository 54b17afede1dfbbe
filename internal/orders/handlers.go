package orders

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecommstack/store-api/internal/observability"
)

// CreateOrderRequest representa a requisição para criar um pedido
type CreateOrderRequest struct {
	CustomerID string               `json:"customer_id" binding:"required"`
	Products   []CreateOrderProduct `json:"products" binding:"required,min=1,dive"`
}

// CreateOrderProduct representa uma linha de produto da requisição
type CreateOrderProduct struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	PlaceOrder(ctx context.Context, customerID string, items []PlaceOrderItem) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

// Handler contém os handlers HTTP de pedidos
type Handler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
	metrics *observability.Metrics
	timeout time.Duration
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, tracer trace.Tracer, metrics *observability.Metrics, timeout time.Duration) *Handler {
	return &Handler{
		useCase: useCase,
		tracer:  tracer,
		metrics: metrics,
		timeout: timeout,
	}
}

// CreateOrder valida e cria um novo pedido
func (h *Handler) CreateOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "place_order")
	defer span.End()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("customer_id", req.CustomerID),
		attribute.Int("product_count", len(req.Products)),
	)

	items := make([]PlaceOrderItem, 0, len(req.Products))
	for _, product := range req.Products {
		items = append(items, PlaceOrderItem{
			ProductID: product.ID,
			Quantity:  product.Quantity,
		})
	}

	// Timeout do workflow inteiro; estourar o prazo cancela a transação
	// no banco, nunca deixa um commit parcial
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	order, err := h.useCase.PlaceOrder(ctx, req.CustomerID, items)
	h.metrics.PlacementDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		h.metrics.OrdersFailed.WithLabelValues(failureReason(err)).Inc()

		switch {
		case IsBusinessError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "order placement timed out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	span.SetAttributes(attribute.String("order_id", order.ID))
	h.metrics.OrdersCreated.Inc()
	c.JSON(http.StatusCreated, order)
}

// GetOrder busca um pedido pelo ID
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

func failureReason(err error) string {
	var customerNotFound *CustomerNotFoundError
	var productsNotFound *ProductsNotFoundError
	var insufficientStock *InsufficientStockError

	switch {
	case errors.As(err, &customerNotFound):
		return observability.ReasonCustomerNotFound
	case errors.As(err, &productsNotFound):
		return observability.ReasonProductsNotFound
	case errors.As(err, &insufficientStock):
		return observability.ReasonInsufficientStock
	default:
		return observability.ReasonInternal
	}
}
