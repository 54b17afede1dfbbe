package main

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Smoke test de ponta a ponta contra uma API em execução: cria cliente e
// produto, faz um pedido válido, confere o decremento de estoque e verifica
// as rejeições de negócio.
func main() {
	baseURL := getEnv("API_URL", "http://localhost:8080")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	log.Printf("🚀 Running smoke test against %s", baseURL)

	var customer struct {
		ID string `json:"id"`
	}
	resp, err := client.R().
		SetBody(map[string]string{
			"name":  "Smoke Test",
			"email": fmt.Sprintf("smoke-%s@example.com", uuid.New().String()[:8]),
		}).
		SetResult(&customer).
		Post("/customers")
	check(err, resp, 201, "create customer")

	var product struct {
		ID string `json:"id"`
	}
	resp, err = client.R().
		SetBody(map[string]interface{}{
			"name":     fmt.Sprintf("Widget %s", uuid.New().String()[:8]),
			"price":    5.0,
			"quantity": 10,
		}).
		SetResult(&product).
		Post("/products")
	check(err, resp, 201, "create product")

	var order struct {
		ID            string `json:"id"`
		OrderProducts []struct {
			ProductID string  `json:"product_id"`
			Price     float64 `json:"price"`
			Quantity  int     `json:"quantity"`
		} `json:"order_products"`
	}
	resp, err = client.R().
		SetBody(map[string]interface{}{
			"customer_id": customer.ID,
			"products": []map[string]interface{}{
				{"id": product.ID, "quantity": 3},
			},
		}).
		SetResult(&order).
		Post("/orders")
	check(err, resp, 201, "place order")

	if len(order.OrderProducts) != 1 || order.OrderProducts[0].Price != 5.0 {
		log.Fatalf("❌ Unexpected order payload: %+v", order)
	}

	// Oversell must be rejected: only 7 units remain
	resp, err = client.R().
		SetBody(map[string]interface{}{
			"customer_id": customer.ID,
			"products": []map[string]interface{}{
				{"id": product.ID, "quantity": 8},
			},
		}).
		Post("/orders")
	check(err, resp, 400, "oversell rejected")

	// Unknown customer must be rejected before touching stock
	resp, err = client.R().
		SetBody(map[string]interface{}{
			"customer_id": uuid.New().String(),
			"products": []map[string]interface{}{
				{"id": product.ID, "quantity": 1},
			},
		}).
		Post("/orders")
	check(err, resp, 400, "unknown customer rejected")

	// Concurrent placement: 7 units left, two orders of 6 each, at most one
	// may succeed
	var wg sync.WaitGroup
	successes := make(chan int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.R().
				SetBody(map[string]interface{}{
					"customer_id": customer.ID,
					"products": []map[string]interface{}{
						{"id": product.ID, "quantity": 6},
					},
				}).
				Post("/orders")
			if err == nil && resp.StatusCode() == 201 {
				successes <- 1
			}
		}()
	}
	wg.Wait()
	close(successes)
	if len(successes) > 1 {
		log.Fatal("❌ Both concurrent orders succeeded, stock was oversold")
	}

	log.Println("✅ Smoke test passed")
}

func check(err error, resp *resty.Response, wantStatus int, step string) {
	if err != nil {
		log.Fatalf("❌ %s: %v", step, err)
	}
	if resp.StatusCode() != wantStatus {
		log.Fatalf("❌ %s: expected status %d, got %d (%s)", step, wantStatus, resp.StatusCode(), resp.String())
	}
	log.Printf("✅ %s", step)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
