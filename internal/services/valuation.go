package services

import (
	"log"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
)

// CalculateDCAStats deriva las estadísticas de un portafolio DCA a partir de
// sus transacciones y comisiones de red. netBTC descuenta los sats quemados
// en fees on-chain, que no son flujo de caja.
func CalculateDCAStats(transactions []models.DCATransaction, fees []models.NetworkFee, btcPriceEur float64) models.DCAStats {
	var stats models.DCAStats
	var totalInvested, totalSold float64

	for _, tx := range transactions {
		if tx.Type == models.DCATransactionTypeSell {
			stats.TotalBTC -= tx.BTCQuantity
			totalSold += tx.EurPaid
			stats.SellCount++
		} else {
			stats.TotalBTC += tx.BTCQuantity
			stats.TotalEUR += tx.EurPaid
			totalInvested += tx.EurPaid
			stats.BuyCount++
		}
	}

	for _, fee := range fees {
		stats.TotalFeesSats += fee.Sats
	}
	stats.TotalFeesBTC = float64(stats.TotalFeesSats) / 100000000 // sats -> BTC
	stats.NetBTC = stats.TotalBTC - stats.TotalFeesBTC

	if stats.TotalBTC > 0 {
		stats.AvgPrice = stats.TotalEUR / stats.TotalBTC
	}

	stats.TransactionCount = len(transactions)
	stats.FeesCount = len(fees)

	// Sin precio BTC el valor actual queda en 0 para este render, no es fatal
	currentValue := 0.0
	if btcPriceEur > 0 {
		currentValue = stats.NetBTC * btcPriceEur
	} else {
		log.Printf("Precio BTC no disponible, valor DCA tratado como 0")
	}

	stats.CashFlow = CalculateCashFlow(totalInvested, totalSold, currentValue)
	return stats
}

// CalculateCryptoPortfolioStats valoriza los holdings con precios en vivo
// (con fallback al precio promedio) y aplica Enhanced Cash Flow sobre el
// historial de transacciones del portafolio.
func CalculateCryptoPortfolioStats(holdings []models.CryptoHolding, transactions []models.CryptoPortfolioTransaction, prices map[string]float64) models.CryptoPortfolioStats {
	var stats models.CryptoPortfolioStats

	for _, holding := range holdings {
		currentPrice, ok := prices[holding.AssetSymbol]
		if !ok || currentPrice <= 0 {
			// Fallback: sin cotización en vivo usamos el precio promedio
			currentPrice = holding.AvgPrice
		}
		stats.TotalValueEur += holding.Quantity * currentPrice
		stats.RealizedGains += holding.RealizedGains
	}
	stats.HoldingsCount = len(holdings)

	var totalInvested, totalSold float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeBuy:
			totalInvested += tx.EurValue
			stats.BuyCount++
		case models.TransactionTypeSell:
			totalSold += tx.EurValue
			stats.SellCount++
		case models.TransactionTypeStakeReward:
			stats.StakeRewardCount++
		}
	}
	stats.TransactionCount = len(transactions)

	stats.CashFlow = CalculateCashFlow(totalInvested, totalSold, stats.TotalValueEur)
	return stats
}

// CalculateOverallStats agrega todos los portafolios de un usuario: los
// totales son sumas simples por portafolio realimentadas por las mismas
// fórmulas de cash flow a nivel usuario.
func CalculateOverallStats(dcaPortfolios []models.DCAPortfolio, cryptoPortfolios []models.CryptoPortfolio) models.CashFlowStats {
	var totalInvested, totalSold, totalCurrentValue float64

	for _, p := range dcaPortfolios {
		if p.Stats == nil {
			continue
		}
		totalInvested += p.Stats.CashFlow.TotalInvested
		totalSold += p.Stats.CashFlow.TotalSold
		totalCurrentValue += p.Stats.CashFlow.TotalValueEur
	}

	for _, p := range cryptoPortfolios {
		if p.Stats == nil {
			continue
		}
		totalInvested += p.Stats.CashFlow.TotalInvested
		totalSold += p.Stats.CashFlow.TotalSold
		totalCurrentValue += p.Stats.TotalValueEur
	}

	return CalculateCashFlow(totalInvested, totalSold, totalCurrentValue)
}

// ConvertEurToUsd convierte un valor EUR a USD con la tasa indicada
func ConvertEurToUsd(eurValue, eurUsdRate float64) float64 {
	return eurValue * eurUsdRate
}

// CalculateBTCFromUSD deriva el BTC equivalente de un valor en USD
func CalculateBTCFromUSD(usdValue, btcPriceUsd float64) float64 {
	if btcPriceUsd <= 0 {
		return 0
	}
	return usdValue / btcPriceUsd
}
