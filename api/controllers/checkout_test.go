package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/juancamilo2341431/netrix-backend/internal/checkout"
)

func TestCheckoutPaymentLinkRejectsMissingFields(t *testing.T) {
	t.Parallel()

	handler := CheckoutPaymentLink(&checkout.IssuanceService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/payment-links", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("response missing flat error key: %v", body)
	}
}

func TestCheckoutConfirmRequiresReference(t *testing.T) {
	t.Parallel()

	handler := CheckoutConfirm(&checkout.SettlementService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout/confirm", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("response missing flat error key: %v", body)
	}
}
