package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
)

// Caché para la terna de precios Bitcoin y reducir llamadas a la API
var (
	btcPriceCache     *models.BitcoinPrice
	btcPriceCachedAt  time.Time
	btcPriceCacheTTL  = 5 * time.Minute
	btcPriceMutex     sync.RWMutex
	httpClientTimeout = 10 * time.Second
)

var priceHTTPClient = &http.Client{Timeout: httpClientTimeout}

// GetBitcoinPrice obtiene la terna {BTC/USD, BTC/EUR, USD/EUR} que consume
// toda la app. El precio BTC/USD viene de cryptoprices.cc y la tasa USD->EUR
// de la API de Frankfurter; BTC/EUR se deriva de ambos.
func GetBitcoinPrice() (*models.BitcoinPrice, error) {
	btcPriceMutex.RLock()
	if btcPriceCache != nil && time.Since(btcPriceCachedAt) < btcPriceCacheTTL {
		cached := *btcPriceCache
		cached.Cached = true
		btcPriceMutex.RUnlock()
		return &cached, nil
	}
	btcPriceMutex.RUnlock()

	btcUsd, err := fetchBTCUSD()
	if err != nil {
		log.Printf("Error al obtener precio BTC/USD: %v", err)
		return nil, err
	}

	usdEur, err := fetchUSDEURRate()
	if err != nil {
		log.Printf("Error al obtener tasa USD/EUR: %v", err)
		return nil, err
	}

	price := &models.BitcoinPrice{
		BTCPriceUSD: utils.RoundBitcoinPrice(btcUsd),
		BTCPriceEUR: utils.RoundBitcoinPrice(btcUsd * usdEur),
		USDEur:      utils.RoundExchangeRate(usdEur),
		Cached:      false,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	btcPriceMutex.Lock()
	btcPriceCache = price
	btcPriceCachedAt = time.Now()
	btcPriceMutex.Unlock()

	return price, nil
}

// fetchBTCUSD obtiene el precio BTC en USD como texto plano
func fetchBTCUSD() (float64, error) {
	req, err := http.NewRequest(http.MethodGet, "https://cryptoprices.cc/BTC", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "SNP-Finance-App/1.0")

	resp, err := priceHTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("respuesta inesperada del proveedor BTC: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	btcUsd, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		return 0, fmt.Errorf("precio BTC inválido: %v", err)
	}
	if btcUsd <= 0 {
		return 0, fmt.Errorf("precio BTC inválido: %f", btcUsd)
	}

	return btcUsd, nil
}

// fetchUSDEURRate obtiene la tasa de cambio USD -> EUR
func fetchUSDEURRate() (float64, error) {
	resp, err := priceHTTPClient.Get("https://api.frankfurter.app/latest?from=USD&to=EUR")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("respuesta inesperada del proveedor de tasas: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := unmarshalJSON(body, &result); err != nil {
		return 0, err
	}

	rate, ok := result.Rates["EUR"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("tasa USD/EUR inválida")
	}

	return rate, nil
}
