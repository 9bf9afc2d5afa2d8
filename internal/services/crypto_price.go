package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Caché para almacenar precios por símbolo y reducir llamadas a la API
var (
	cryptoPriceCache = make(map[string]cachedPrice)
	cryptoPriceMutex sync.RWMutex
)

type cachedPrice struct {
	Price     float64
	Timestamp time.Time
}

func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// GetCryptoPrices obtiene el precio EUR actual para cada símbolo solicitado
// desde CryptoCompare, usando el caché cuando es reciente (menos de 5 minutos).
// Los símbolos sin cotización simplemente no aparecen en el mapa.
func GetCryptoPrices(symbols []string) (map[string]float64, bool, error) {
	prices := make(map[string]float64)
	var missing []string

	cryptoPriceMutex.RLock()
	for _, symbol := range symbols {
		upper := strings.ToUpper(strings.TrimSpace(symbol))
		if upper == "" {
			continue
		}
		if cached, exists := cryptoPriceCache[upper]; exists && time.Since(cached.Timestamp) < 5*time.Minute {
			prices[upper] = cached.Price
		} else {
			missing = append(missing, upper)
		}
	}
	cryptoPriceMutex.RUnlock()

	if len(missing) == 0 {
		return prices, true, nil
	}

	// Construir la URL de la API para los símbolos que faltan
	url := fmt.Sprintf(
		"https://min-api.cryptocompare.com/data/pricemulti?fsyms=%s&tsyms=EUR",
		strings.Join(missing, ","),
	)

	resp, err := priceHTTPClient.Get(url)
	if err != nil {
		log.Printf("Error al obtener precios crypto: %v", err)
		// Devolvemos lo que haya en caché: el caller hace fallback a avgPrice
		return prices, false, err
	}
	defer resp.Body.Close()

	var result map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Error al parsear precios crypto: %v", err)
		return prices, false, err
	}

	cryptoPriceMutex.Lock()
	for symbol, quotes := range result {
		if eur, ok := quotes["EUR"]; ok && eur > 0 {
			prices[symbol] = eur
			cryptoPriceCache[symbol] = cachedPrice{Price: eur, Timestamp: time.Now()}
		}
	}
	cryptoPriceMutex.Unlock()

	return prices, false, nil
}
