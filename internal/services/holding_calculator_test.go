package services

import (
	"testing"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func tx(txType string, quantity, eurValue float64, day int) models.CryptoPortfolioTransaction {
	return models.CryptoPortfolioTransaction{
		Type:     txType,
		Quantity: quantity,
		EurValue: eurValue,
		Date:     time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestFoldHoldings_SoloCompras(t *testing.T) {
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeBuy, 0.001, 100, 1),
	})

	assert.Equal(t, 0.001, totals.Quantity)
	assert.Equal(t, 100.0, totals.TotalInvested)
	assert.Equal(t, 0.0, totals.RealizedGains)
	assert.InDelta(t, 100000.0, totals.AvgPrice, 1e-9)
}

func TestFoldHoldings_VentaConCostoBase(t *testing.T) {
	// Compra 0.001 por 100 (avg 100000), vende 0.0005 por 80: costo base 50,
	// ganancia realizada 30, quedan 50 invertidos
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeBuy, 0.001, 100, 1),
		tx(models.TransactionTypeSell, 0.0005, 80, 2),
	})

	assert.InDelta(t, 0.0005, totals.Quantity, 1e-12)
	assert.InDelta(t, 50.0, totals.TotalInvested, 1e-9)
	assert.InDelta(t, 30.0, totals.RealizedGains, 1e-9)
}

func TestFoldHoldings_OrdenPorFecha(t *testing.T) {
	// Aunque lleguen desordenadas, la venta se procesa después de la compra
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeSell, 0.0005, 80, 2),
		tx(models.TransactionTypeBuy, 0.001, 100, 1),
	})

	assert.InDelta(t, 50.0, totals.TotalInvested, 1e-9)
	assert.InDelta(t, 30.0, totals.RealizedGains, 1e-9)
}

func TestFoldHoldings_StakeReward(t *testing.T) {
	// El reward suma cantidad sin costo base: todo su valor es ganancia
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeBuy, 10, 100, 1),
		tx(models.TransactionTypeStakeReward, 0.5, 5, 2),
	})

	assert.Equal(t, 10.5, totals.Quantity)
	assert.Equal(t, 100.0, totals.TotalInvested)
	assert.Equal(t, 5.0, totals.RealizedGains)
}

func TestFoldHoldings_SwapComoCompraVenta(t *testing.T) {
	// swap_out descuenta con costo base, swap_in entra como compra
	out := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeBuy, 2, 200, 1),
		tx(models.TransactionTypeSwapOut, 1, 150, 2),
	})
	assert.InDelta(t, 1.0, out.Quantity, 1e-12)
	assert.InDelta(t, 100.0, out.TotalInvested, 1e-9)
	assert.InDelta(t, 50.0, out.RealizedGains, 1e-9)

	in := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeSwapIn, 300, 150, 2),
	})
	assert.Equal(t, 300.0, in.Quantity)
	assert.Equal(t, 150.0, in.TotalInvested)
}

func TestFoldHoldings_Polvo(t *testing.T) {
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeBuy, 1, 100, 1),
		tx(models.TransactionTypeSell, 1, 120, 2),
	})

	assert.True(t, totals.IsDust())
	assert.InDelta(t, 20.0, totals.RealizedGains, 1e-9)
}

func TestFoldHoldings_VentaSinPosicion(t *testing.T) {
	// Venta sin compras previas: sin precio promedio, todo es ganancia
	totals := FoldHoldings([]models.CryptoPortfolioTransaction{
		tx(models.TransactionTypeSell, 1, 50, 1),
	})

	assert.Equal(t, -1.0, totals.Quantity)
	assert.Equal(t, 50.0, totals.RealizedGains)
	assert.True(t, totals.IsDust())
}
