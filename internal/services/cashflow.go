package services

import "github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"

// CalculateCashFlow aplica el modelo Enhanced Cash Flow a cualquier portafolio
// a partir de {total invertido, total vendido, valor actual}. La misma función
// sirve para portafolios DCA y crypto: el capital recuperado nunca supera lo
// invertido, y la ganancia realizada solo cuenta una vez recuperado el principal.
func CalculateCashFlow(totalInvested, totalSold, totalValueEur float64) models.CashFlowStats {
	capitalRecovered := totalSold
	if capitalRecovered > totalInvested {
		capitalRecovered = totalInvested
	}

	effectiveInvestment := totalInvested - capitalRecovered
	if effectiveInvestment < 0 {
		effectiveInvestment = 0
	}

	realizedProfit := totalSold - totalInvested
	if realizedProfit < 0 {
		realizedProfit = 0
	}

	unrealizedGains := totalValueEur - effectiveInvestment

	var totalROI float64
	if totalInvested > 0 {
		totalROI = ((realizedProfit + unrealizedGains) / totalInvested) * 100
	}

	return models.CashFlowStats{
		TotalInvested:       totalInvested,
		TotalSold:           totalSold,
		CapitalRecovered:    capitalRecovered,
		EffectiveInvestment: effectiveInvestment,
		RealizedProfit:      realizedProfit,
		IsFullyRecovered:    totalInvested > 0 && capitalRecovered >= totalInvested,
		TotalValueEur:       totalValueEur,
		UnrealizedGains:     unrealizedGains,
		TotalROI:            totalROI,
	}
}
