package products

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecommstack/store-api/internal/observability"
)

// CreateProductRequest representa a requisição para criar um produto
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Quantity int     `json:"quantity" binding:"gte=0"`
}

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	CreateProduct(ctx context.Context, name string, price float64, quantity int) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// Handler contém os handlers HTTP de produtos
type Handler struct {
	useCase UseCaseInterface
	metrics *observability.Metrics
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, metrics *observability.Metrics) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
	}
}

// CreateProduct cria um novo produto
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, ErrNameInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.ProductsCreated.Inc()
	c.JSON(http.StatusCreated, product)
}

// ListProducts lista todos os produtos
func (h *Handler) ListProducts(c *gin.Context) {
	list, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}
