package services

import (
	"testing"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func dcaTx(txType string, btc, eur float64, day int) models.DCATransaction {
	return models.DCATransaction{
		Type:        txType,
		BTCQuantity: btc,
		EurPaid:     eur,
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateDCAStats_NetBTCDescuentaFees(t *testing.T) {
	transactions := []models.DCATransaction{
		dcaTx(models.DCATransactionTypeBuy, 0.01, 500, 1),
		dcaTx(models.DCATransactionTypeBuy, 0.01, 600, 2),
		dcaTx(models.DCATransactionTypeSell, 0.005, 400, 3),
	}
	fees := []models.NetworkFee{
		{Sats: 50000},  // 0.0005 BTC
		{Sats: 150000}, // 0.0015 BTC
	}

	stats := CalculateDCAStats(transactions, fees, 60000)

	assert.InDelta(t, 0.015, stats.TotalBTC, 1e-12)
	assert.Equal(t, int64(200000), stats.TotalFeesSats)
	assert.InDelta(t, 0.002, stats.TotalFeesBTC, 1e-12)
	assert.InDelta(t, 0.013, stats.NetBTC, 1e-12)
	assert.Equal(t, 2, stats.BuyCount)
	assert.Equal(t, 1, stats.SellCount)

	// Cash flow: 1100 invertidos, 400 vendidos, valor = netBTC * 60000
	assert.Equal(t, 1100.0, stats.CashFlow.TotalInvested)
	assert.Equal(t, 400.0, stats.CashFlow.TotalSold)
	assert.InDelta(t, 780.0, stats.CashFlow.TotalValueEur, 1e-9)
}

func TestCalculateDCAStats_SinPrecioValorCero(t *testing.T) {
	transactions := []models.DCATransaction{
		dcaTx(models.DCATransactionTypeBuy, 0.01, 500, 1),
	}

	stats := CalculateDCAStats(transactions, nil, 0)

	assert.Equal(t, 0.0, stats.CashFlow.TotalValueEur)
	assert.Equal(t, 500.0, stats.CashFlow.TotalInvested)
}

func TestCalculateCryptoPortfolioStats_FallbackAvgPrice(t *testing.T) {
	holdings := []models.CryptoHolding{
		{AssetSymbol: "ETH", Quantity: 2, AvgPrice: 1500, TotalInvested: 3000},
		{AssetSymbol: "SOL", Quantity: 10, AvgPrice: 100, TotalInvested: 1000, RealizedGains: 50},
	}
	transactions := []models.CryptoPortfolioTransaction{
		{Type: models.TransactionTypeBuy, EurValue: 3000},
		{Type: models.TransactionTypeBuy, EurValue: 1000},
	}

	// Solo ETH cotiza en vivo; SOL se valoriza al precio promedio
	prices := map[string]float64{"ETH": 2000}

	stats := CalculateCryptoPortfolioStats(holdings, transactions, prices)

	assert.InDelta(t, 2*2000+10*100, stats.TotalValueEur, 1e-9)
	assert.Equal(t, 50.0, stats.RealizedGains)
	assert.Equal(t, 2, stats.BuyCount)
	assert.Equal(t, 4000.0, stats.CashFlow.TotalInvested)
}

func TestCalculateOverallStats_SumaPortafolios(t *testing.T) {
	dcaStats := models.DCAStats{
		CashFlow: models.CashFlowStats{TotalInvested: 1000, TotalSold: 200, TotalValueEur: 900},
	}
	cryptoStats := models.CryptoPortfolioStats{
		TotalValueEur: 500,
		CashFlow:      models.CashFlowStats{TotalInvested: 400, TotalSold: 0},
	}

	overall := CalculateOverallStats(
		[]models.DCAPortfolio{{Stats: &dcaStats}, {Stats: nil}},
		[]models.CryptoPortfolio{{Stats: &cryptoStats}},
	)

	assert.Equal(t, 1400.0, overall.TotalInvested)
	assert.Equal(t, 200.0, overall.TotalSold)
	assert.Equal(t, 1400.0, overall.TotalValueEur)
}

func TestCalculateBTCFromUSD(t *testing.T) {
	assert.Equal(t, 0.0, CalculateBTCFromUSD(1000, 0))
	assert.InDelta(t, 0.01, CalculateBTCFromUSD(600, 60000), 1e-12)
}
