package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa os contadores de negócio expostos em /metrics
type Metrics struct {
	OrdersCreated     prometheus.Counter
	OrdersFailed      *prometheus.CounterVec
	PlacementDuration prometheus.Histogram
	CustomersCreated  prometheus.Counter
	ProductsCreated   prometheus.Counter
}

// NewMetrics registra os contadores no registry informado
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total de pedidos criados com sucesso",
		}),
		OrdersFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store",
			Subsystem: "orders",
			Name:      "failed_total",
			Help:      "Total de pedidos rejeitados, por motivo",
		}, []string{"reason"}),
		PlacementDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "store",
			Subsystem: "orders",
			Name:      "placement_duration_seconds",
			Help:      "Duração do workflow de criação de pedido",
			Buckets:   prometheus.DefBuckets,
		}),
		CustomersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Subsystem: "customers",
			Name:      "created_total",
			Help:      "Total de clientes criados",
		}),
		ProductsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Subsystem: "products",
			Name:      "created_total",
			Help:      "Total de produtos criados",
		}),
	}
}

// Motivos usados no label reason de store_orders_failed_total
const (
	ReasonCustomerNotFound  = "customer_not_found"
	ReasonProductsNotFound  = "products_not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonInternal          = "internal"
)
