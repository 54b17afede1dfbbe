package customers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecommstack/store-api/internal/observability"
)

// CreateCustomerRequest representa a requisição para criar um cliente
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	CreateCustomer(ctx context.Context, name, email string) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
}

// Handler contém os handlers HTTP de clientes
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

// CreateCustomer cria um novo cliente
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.useCase.CreateCustomer(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.CustomersCreated.Inc()
	c.JSON(http.StatusCreated, customer)
}

// GetCustomer busca um cliente pelo ID
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.useCase.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, customer)
}
