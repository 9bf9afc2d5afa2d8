package middleware

import (
	"net/http"
	"strings"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

// GetBitcoinPrice expone la terna {BTC/USD, BTC/EUR, USD/EUR}
func GetBitcoinPrice(c *gin.Context) {
	price, err := services.GetBitcoinPrice()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Precio BTC no disponible"})
		return
	}

	c.JSON(http.StatusOK, price)
}

// GetCryptoPrices expone el mapa SYMBOL -> precio EUR para los símbolos
// pedidos en ?symbols=BTC,ETH,SOL
func GetCryptoPrices(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el parámetro symbols"})
		return
	}

	prices, cached, err := services.GetCryptoPrices(strings.Split(raw, ","))
	if err != nil && len(prices) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Precios no disponibles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prices": prices,
		"cached": cached,
	})
}
