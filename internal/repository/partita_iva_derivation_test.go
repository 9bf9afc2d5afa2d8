package repository

import (
	"testing"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTaxes_PorcentajesPorDefecto(t *testing.T) {
	config := &models.PartitaIVAConfig{
		PercentualeImponibile: DefaultPercentualeImponibile,
		PercentualeImposta:    DefaultPercentualeImposta,
		PercentualeContributi: DefaultPercentualeContributi,
	}
	income := &models.PartitaIVAIncome{Entrata: 1000}

	deriveTaxes(income, config)

	// 1000 * 78% = 780 imponible; imposta 5% = 39; contributi 26.23% = 204.59
	assert.Equal(t, 780.0, income.Imponibile)
	assert.Equal(t, 39.0, income.Imposta)
	assert.Equal(t, 204.59, income.Contributi)
	assert.Equal(t, 243.59, income.TotaleTasse)
}

func TestDeriveTaxes_PorcentajesPersonalizados(t *testing.T) {
	config := &models.PartitaIVAConfig{
		PercentualeImponibile: 67,
		PercentualeImposta:    15,
		PercentualeContributi: 24,
	}
	income := &models.PartitaIVAIncome{Entrata: 2500}

	deriveTaxes(income, config)

	assert.Equal(t, 1675.0, income.Imponibile)
	assert.Equal(t, 251.25, income.Imposta)
	assert.Equal(t, 402.0, income.Contributi)
	assert.Equal(t, 653.25, income.TotaleTasse)
}
