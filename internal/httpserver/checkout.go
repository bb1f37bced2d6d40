package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freshcart/internal/checkout"
)

// checkoutHandler implements POST /api/checkout: an HTML-form submission
// that ends in a 303 redirect to the provider-hosted payment page.
func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
			return
		}

		in := checkout.Input{
			Email:    c.PostForm("email"),
			Name:     c.PostForm("name"),
			Address:  c.PostForm("address"),
			City:     c.PostForm("city"),
			Products: c.PostForm("products"),
			Origin:   requestOrigin(c),
		}

		res, err := svc.Checkout(c.Request.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all required fields."})
			case errors.Is(err, checkout.ErrInvalidEmail):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address."})
			case errors.Is(err, checkout.ErrUnknownProduct):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart contains an unknown product."})
			case errors.Is(err, checkout.ErrPaymentProvider):
				// Provider details stay out of the response.
				c.JSON(http.StatusBadGateway, gin.H{"error": "Could not start the payment. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Redirect(http.StatusSeeOther, res.RedirectURL)
	}
}

// requestOrigin derives the origin the success/cancel URLs point back to:
// the Origin header when the browser sent one, otherwise scheme://host.
func requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
