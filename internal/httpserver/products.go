package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"freshcart/internal/checkout"
	"freshcart/internal/domain"
)

// productsHandler serves the product lookup collaborator used by the cart:
// GET /api/products returns the full catalog, GET /api/products?ids=a,b
// only the requested identifiers.
func productsHandler(products productLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			result []domain.Product
			err    error
		)
		if idsParam := strings.TrimSpace(c.Query("ids")); idsParam != "" {
			result, err = products.ListByIDs(c.Request.Context(), checkout.SplitIDs(idsParam))
		} else {
			result, err = products.List(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load products"})
			return
		}
		if result == nil {
			result = []domain.Product{}
		}
		c.JSON(http.StatusOK, result)
	}
}
