package utils

import "github.com/shopspring/decimal"

// roundToPrecision redondea un valor a un número fijo de decimales pasando
// por decimal para evitar los artefactos de float64
func roundToPrecision(value float64, decimals int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(decimals).Float64()
	return f
}

// RoundCurrency redondea importes en EUR/USD a 2 decimales
func RoundCurrency(value float64) float64 {
	return roundToPrecision(value, 2)
}

// RoundExchangeRate redondea tasas de cambio a 4 decimales
func RoundExchangeRate(value float64) float64 {
	return roundToPrecision(value, 4)
}

// RoundBitcoin redondea cantidades de BTC a 8 decimales (precisión estándar)
func RoundBitcoin(value float64) float64 {
	return roundToPrecision(value, 8)
}

// RoundBitcoinPrice redondea precios de BTC en fiat a 2 decimales
func RoundBitcoinPrice(value float64) float64 {
	return roundToPrecision(value, 2)
}

// RoundPercentage redondea porcentajes a 4 decimales
func RoundPercentage(value float64) float64 {
	return roundToPrecision(value, 4)
}
