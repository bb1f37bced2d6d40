package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"freshcart/internal/domain"
)

func TestProductsHandler_ListAll(t *testing.T) {
	lister := &stubProductLister{products: []domain.Product{
		{ID: "a", Name: "Avocados", Price: 10},
	}}
	router := testRouter(t, Deps{Products: lister})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if lister.listed != 1 {
		t.Fatalf("expected full list query, got %d", lister.listed)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Avocados"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestProductsHandler_FilterByIDs(t *testing.T) {
	lister := &stubProductLister{}
	router := testRouter(t, Deps{Products: lister})

	req := httptest.NewRequest(http.MethodGet, "/api/products?ids=a,b,a", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !reflect.DeepEqual(lister.lastIDs, []string{"a", "b", "a"}) {
		t.Fatalf("unexpected ids %v", lister.lastIDs)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestProductsHandler_Error(t *testing.T) {
	lister := &stubProductLister{err: errors.New("boom")}
	router := testRouter(t, Deps{Products: lister})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
