package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolkflow/tolkflow-backend/internal/quotes"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

type testQuoteService struct {
	quoteFn func(ctx context.Context, vendorID uuid.UUID, req quotes.QuoteRequest) (*quotes.PriceQuote, error)
}

func (s *testQuoteService) QuoteForVendor(ctx context.Context, vendorID uuid.UUID, req quotes.QuoteRequest) (*quotes.PriceQuote, error) {
	if s.quoteFn != nil {
		return s.quoteFn(ctx, vendorID, req)
	}
	return nil, nil
}

func TestVendorQuoteSuccess(t *testing.T) {
	vendorID := uuid.New()
	svc := &testQuoteService{
		quoteFn: func(ctx context.Context, vid uuid.UUID, req quotes.QuoteRequest) (*quotes.PriceQuote, error) {
			if vid != vendorID {
				t.Fatalf("unexpected vendor %s", vid)
			}
			if !req.UnitFee.Equal(decimal.RequireFromString("0.10")) {
				t.Fatalf("unexpected unit fee %s", req.UnitFee)
			}
			return &quotes.PriceQuote{
				UnitFee:           req.UnitFee,
				EffectiveQuantity: decimal.NewFromInt(750),
				TotalPrice:        decimal.RequireFromString("75.00"),
			}, nil
		},
	}

	body := `{"unit_fee":"0.10","breakdown":{"101":"1000"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/"+vendorID.String()+"/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withVendorParam(req, vendorID)

	resp := httptest.NewRecorder()
	VendorQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data quotes.PriceQuote `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Data.TotalPrice.Equal(decimal.RequireFromString("75.00")) {
		t.Fatalf("unexpected total %s", envelope.Data.TotalPrice)
	}
}

func TestVendorQuoteBadVendorID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/nope/quotes", strings.NewReader(`{}`))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("vendorID", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	VendorQuote(&testQuoteService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestVendorQuoteMissingBreakdown(t *testing.T) {
	vendorID := uuid.New()
	called := false
	svc := &testQuoteService{
		quoteFn: func(ctx context.Context, vid uuid.UUID, req quotes.QuoteRequest) (*quotes.PriceQuote, error) {
			called = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/"+vendorID.String()+"/quotes", strings.NewReader(`{"unit_fee":"0.10"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withVendorParam(req, vendorID)

	resp := httptest.NewRecorder()
	VendorQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if called {
		t.Fatal("service should not be reached on invalid payload")
	}
}

func TestVendorQuoteServiceValidationError(t *testing.T) {
	vendorID := uuid.New()
	svc := &testQuoteService{
		quoteFn: func(ctx context.Context, vid uuid.UUID, req quotes.QuoteRequest) (*quotes.PriceQuote, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "breakdown.999: unknown match tier")
		},
	}

	body := `{"unit_fee":"0.10","breakdown":{"999":"10"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/"+vendorID.String()+"/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withVendorParam(req, vendorID)

	resp := httptest.NewRecorder()
	VendorQuote(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "unknown match tier") {
		t.Fatalf("expected validation message in body, got %s", resp.Body.String())
	}
}
