package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrderSendsMinorUnits(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key-id" || pass != "key-secret" {
			t.Error("missing or wrong basic auth")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(Order{
			ID: "order_1", Amount: 50000, Currency: "INR", Receipt: "apt123", Status: "created",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-id", "key-secret")
	order, err := client.CreateOrder(context.Background(), 50000, "INR", "apt123")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if got["amount"].(float64) != 50000 {
		t.Fatalf("amount sent = %v", got["amount"])
	}
	if got["receipt"] != "apt123" {
		t.Fatalf("receipt sent = %v", got["receipt"])
	}
	if order.ID != "order_1" {
		t.Fatalf("order id = %q", order.ID)
	}
}

func TestFetchOrderReturnsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders/order_1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Order{
			ID: "order_1", Amount: 50000, Currency: "INR", Receipt: "apt123", Status: OrderStatusPaid,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-id", "key-secret")
	order, err := client.FetchOrder(context.Background(), "order_1")
	if err != nil {
		t.Fatalf("FetchOrder: %v", err)
	}
	if order.Status != OrderStatusPaid {
		t.Fatalf("status = %q", order.Status)
	}
	if order.Receipt != "apt123" {
		t.Fatalf("receipt = %q", order.Receipt)
	}
}

func TestGatewayErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad", "creds")
	if _, err := client.FetchOrder(context.Background(), "order_1"); err == nil {
		t.Fatal("expected error on gateway failure")
	}
}
