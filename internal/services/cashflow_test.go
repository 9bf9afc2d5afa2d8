package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCashFlow_SinVentas(t *testing.T) {
	stats := CalculateCashFlow(100, 0, 120)

	assert.Equal(t, 100.0, stats.TotalInvested)
	assert.Equal(t, 0.0, stats.CapitalRecovered)
	assert.Equal(t, 100.0, stats.EffectiveInvestment)
	assert.False(t, stats.IsFullyRecovered)
	assert.Equal(t, 0.0, stats.RealizedProfit)
	assert.Equal(t, 20.0, stats.UnrealizedGains)
	assert.Equal(t, 20.0, stats.TotalROI)
}

func TestCalculateCashFlow_RecuperoParcial(t *testing.T) {
	// Venta de 80 EUR contra 100 invertidos: recupera 80, quedan 20 en riesgo
	stats := CalculateCashFlow(100, 80, 50)

	assert.Equal(t, 80.0, stats.CapitalRecovered)
	assert.Equal(t, 20.0, stats.EffectiveInvestment)
	assert.Equal(t, 0.0, stats.RealizedProfit)
	assert.False(t, stats.IsFullyRecovered)
	assert.Equal(t, 30.0, stats.UnrealizedGains)
}

func TestCalculateCashFlow_RecuperoTotal(t *testing.T) {
	// Vendió más de lo invertido: todo el valor restante es ganancia pura
	stats := CalculateCashFlow(100, 150, 60)

	assert.Equal(t, 100.0, stats.CapitalRecovered)
	assert.Equal(t, 0.0, stats.EffectiveInvestment)
	assert.Equal(t, 50.0, stats.RealizedProfit)
	assert.True(t, stats.IsFullyRecovered)
	assert.Equal(t, 60.0, stats.UnrealizedGains)
	// ROI = (50 realizados + 60 no realizados) / 100 invertidos
	assert.Equal(t, 110.0, stats.TotalROI)
}

func TestCalculateCashFlow_SinInversion(t *testing.T) {
	stats := CalculateCashFlow(0, 0, 0)

	assert.Equal(t, 0.0, stats.TotalROI)
	assert.False(t, stats.IsFullyRecovered)
	assert.Equal(t, 0.0, stats.EffectiveInvestment)
}

func TestCalculateCashFlow_Invariantes(t *testing.T) {
	tests := []struct {
		name      string
		invested  float64
		sold      float64
		valueEur  float64
	}{
		{"sin movimientos", 0, 0, 0},
		{"venta mayor a inversión", 50, 500, 10},
		{"venta igual a inversión", 200, 200, 0},
		{"inversión sin valor actual", 300, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateCashFlow(tt.invested, tt.sold, tt.valueEur)

			assert.LessOrEqual(t, stats.CapitalRecovered, stats.TotalInvested)
			assert.GreaterOrEqual(t, stats.EffectiveInvestment, 0.0)
			assert.GreaterOrEqual(t, stats.RealizedProfit, 0.0)
			if stats.TotalInvested > 0 {
				assert.Equal(t, stats.CapitalRecovered == stats.TotalInvested, stats.IsFullyRecovered)
			}
		})
	}
}
