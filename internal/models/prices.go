package models

// BitcoinPrice es la terna de precios que consume toda la app
type BitcoinPrice struct {
	BTCPriceUSD float64 `json:"btc_price_usd"`
	BTCPriceEUR float64 `json:"btc_price_eur"`
	USDEur      float64 `json:"usd_eur"`
	Cached      bool    `json:"cached"`
	Timestamp   string  `json:"timestamp"`
}

// CryptoPrices es el mapa SYMBOL -> precio EUR para activos arbitrarios
type CryptoPrices struct {
	Prices map[string]float64 `json:"prices"`
	Cached bool               `json:"cached"`
}
