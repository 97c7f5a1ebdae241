package rateControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
	"github.com/Pattarapon0/dcommerce-sub002/ratecache"
)

// GET /rates/:quote
// Returns the exchange rate from the platform currency to :quote.
func GetRateHandler(rates *ratecache.Cache, baseCurrency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		quote := strings.ToUpper(c.Param("quote"))
		if len(quote) != 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quote must be a 3-letter currency code"})
			return
		}

		rate, err := rates.Rate(c.Request.Context(), baseCurrency, quote)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"base": baseCurrency, "quote": quote, "rate": rate})
	}
}
