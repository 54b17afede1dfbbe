package orders

import (
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	// Arrange
	customerID := "customer-123"
	items := []OrderProduct{
		{ProductID: "product-1", Price: 5.0, Quantity: 3},
		{ProductID: "product-2", Price: 1.5, Quantity: 2},
	}

	// Act
	order := NewOrder(customerID, items)

	// Assert
	if order.ID == "" {
		t.Error("Expected order ID to be generated")
	}
	if order.CustomerID != customerID {
		t.Errorf("Expected CustomerID %s, got %s", customerID, order.CustomerID)
	}
	if len(order.OrderProducts) != 2 {
		t.Fatalf("Expected 2 order products, got %d", len(order.OrderProducts))
	}
	for i, item := range order.OrderProducts {
		if item.ID == "" {
			t.Errorf("Expected line item %d ID to be generated", i)
		}
		if item.OrderID != order.ID {
			t.Errorf("Expected line item %d to reference order %s, got %s", i, order.ID, item.OrderID)
		}
	}
	if order.OrderProducts[0].ProductID != "product-1" || order.OrderProducts[1].ProductID != "product-2" {
		t.Error("Expected line items to preserve input order")
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	now := time.Now()
	if order.CreatedAt.After(now) || order.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestOrderTotal(t *testing.T) {
	order := NewOrder("customer-123", []OrderProduct{
		{ProductID: "product-1", Price: 5.0, Quantity: 3},
		{ProductID: "product-2", Price: 1.5, Quantity: 2},
	})

	if total := order.Total(); total != 18.0 {
		t.Errorf("Expected total 18.0, got %f", total)
	}
}
