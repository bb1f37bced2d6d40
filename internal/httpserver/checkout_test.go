package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"freshcart/internal/checkout"
	"freshcart/internal/domain"
)

type stubProductLister struct {
	products []domain.Product
	err      error
	lastIDs  []string
	listed   int
}

func (s *stubProductLister) List(_ context.Context) ([]domain.Product, error) {
	s.listed++
	return s.products, s.err
}

func (s *stubProductLister) ListByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	s.lastIDs = ids
	return s.products, s.err
}

type stubCheckoutSvc struct {
	result *checkout.Result
	err    error
	calls  int
	lastIn checkout.Input
}

func (s *stubCheckoutSvc) Checkout(_ context.Context, in checkout.Input) (*checkout.Result, error) {
	s.calls++
	s.lastIn = in
	return s.result, s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.Products == nil {
		deps.Products = &stubProductLister{}
	}
	if deps.Checkout == nil {
		deps.Checkout = &stubCheckoutSvc{}
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func postCheckout(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func checkoutForm() url.Values {
	return url.Values{
		"email":    {"jane@example.com"},
		"name":     {"Jane Doe"},
		"address":  {"1 Main St"},
		"city":     {"Springfield"},
		"products": {"a,a,b"},
	}
}

func TestCheckoutHandler_MethodNotAllowed(t *testing.T) {
	svc := &stubCheckoutSvc{}
	router := testRouter(t, Deps{Checkout: svc})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/checkout", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", method, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error":"Method Not Allowed"`) {
			t.Fatalf("%s: unexpected body %s", method, rec.Body.String())
		}
	}
	if svc.calls != 0 {
		t.Fatalf("wrong method must not reach the service, got %d calls", svc.calls)
	}
}

func TestCheckoutHandler_MissingFields(t *testing.T) {
	svc := &stubCheckoutSvc{err: checkout.ErrMissingFields}
	router := testRouter(t, Deps{Checkout: svc})

	form := checkoutForm()
	form.Del("city")
	rec := postCheckout(router, form)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Please fill out all required fields."`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCheckoutHandler_InvalidEmail(t *testing.T) {
	svc := &stubCheckoutSvc{err: checkout.ErrInvalidEmail}
	router := testRouter(t, Deps{Checkout: svc})

	rec := postCheckout(router, checkoutForm())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "valid email") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCheckoutHandler_UnknownProduct(t *testing.T) {
	svc := &stubCheckoutSvc{err: checkout.ErrUnknownProduct}
	router := testRouter(t, Deps{Checkout: svc})

	rec := postCheckout(router, checkoutForm())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutHandler_ProviderFailure(t *testing.T) {
	svc := &stubCheckoutSvc{err: checkout.ErrPaymentProvider}
	router := testRouter(t, Deps{Checkout: svc})

	rec := postCheckout(router, checkoutForm())

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "provider down") {
		t.Fatalf("provider details must not leak: %s", rec.Body.String())
	}
}

func TestCheckoutHandler_RedirectsToSession(t *testing.T) {
	svc := &stubCheckoutSvc{result: &checkout.Result{
		Order:       &domain.Order{ID: "order-1"},
		SessionID:   "sess-1",
		RedirectURL: "https://pay.example/sess-1",
	}}
	router := testRouter(t, Deps{Checkout: svc})

	rec := postCheckout(router, checkoutForm())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://pay.example/sess-1" {
		t.Fatalf("unexpected Location %q", loc)
	}
	if svc.lastIn.Email != "jane@example.com" || svc.lastIn.Products != "a,a,b" {
		t.Fatalf("form not passed through: %+v", svc.lastIn)
	}
	if svc.lastIn.Origin != "https://shop.example" {
		t.Fatalf("expected Origin header to win, got %q", svc.lastIn.Origin)
	}
}

func TestCheckoutHandler_OriginFallsBackToHost(t *testing.T) {
	svc := &stubCheckoutSvc{result: &checkout.Result{
		Order:       &domain.Order{ID: "order-1"},
		RedirectURL: "https://pay.example/sess-1",
	}}
	router := testRouter(t, Deps{Checkout: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Host = "shop.local:8080"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if svc.lastIn.Origin != "http://shop.local:8080" {
		t.Fatalf("expected host-derived origin, got %q", svc.lastIn.Origin)
	}
}
