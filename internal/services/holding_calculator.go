package services

import (
	"sort"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
)

// DustThreshold: por debajo de esta cantidad el holding se elimina en lugar
// de persistirse en cero (polvo de float)
const DustThreshold = 0.0000001

// HoldingTotals es el resultado de plegar el historial de un (portfolio, asset)
type HoldingTotals struct {
	Quantity      float64
	AvgPrice      float64
	TotalInvested float64
	RealizedGains float64
}

// FoldHoldings recalcula el holding de un activo desde su historial completo.
// El pliegue es secuencial y depende del orden: las ventas usan el precio
// promedio vigente en ese momento, así que las transacciones se procesan en
// orden ascendente de fecha.
func FoldHoldings(transactions []models.CryptoPortfolioTransaction) HoldingTotals {
	sorted := make([]models.CryptoPortfolioTransaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var totals HoldingTotals

	for _, tx := range sorted {
		switch tx.Type {
		case models.TransactionTypeBuy, models.TransactionTypeSwapIn:
			totals.Quantity += tx.Quantity
			totals.TotalInvested += tx.EurValue

		case models.TransactionTypeSell, models.TransactionTypeSwapOut:
			var avgPrice float64
			if totals.Quantity > 0 {
				avgPrice = totals.TotalInvested / totals.Quantity
			}
			costBasis := tx.Quantity * avgPrice

			totals.Quantity -= tx.Quantity
			totals.TotalInvested -= costBasis
			totals.RealizedGains += tx.EurValue - costBasis

		case models.TransactionTypeStakeReward:
			// El reward no toca el costo base: entra como ganancia realizada
			totals.Quantity += tx.Quantity
			totals.RealizedGains += tx.EurValue
		}
	}

	if totals.Quantity > 0 {
		totals.AvgPrice = totals.TotalInvested / totals.Quantity
	}

	return totals
}

// IsDust indica si la cantidad resultante debe tratarse como cero
func (h HoldingTotals) IsDust() bool {
	return h.Quantity <= DustThreshold
}
