package repository

import (
	"testing"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func fixed(name string, target float64, order int) models.Budget {
	return models.Budget{Name: name, TargetAmount: target, Type: models.BudgetTypeFixed, Order: order}
}

func unlimited(name string, order int) models.Budget {
	return models.Budget{Name: name, Type: models.BudgetTypeUnlimited, Order: order}
}

func TestAllocateBudgets_FijoMasIlimitado(t *testing.T) {
	// 800 de liquidez: el fijo toma 500, el ilimitado los 300 restantes
	allocations := AllocateBudgets([]models.Budget{
		fixed("Emergencias", 500, 1),
		unlimited("Libre", 2),
	}, 800)

	assert.Equal(t, 500.0, allocations[0].AllocatedAmount)
	assert.Equal(t, 100.0, allocations[0].Progress)
	assert.True(t, allocations[0].IsCompleted)
	assert.Equal(t, 0.0, allocations[0].Deficit)

	assert.Equal(t, 300.0, allocations[1].AllocatedAmount)
	assert.Equal(t, 100.0, allocations[1].Progress)
	assert.True(t, allocations[1].IsCompleted)
}

func TestAllocateBudgets_LiquidezInsuficiente(t *testing.T) {
	// 300 de liquidez contra un objetivo de 500: asignación parcial con déficit
	allocations := AllocateBudgets([]models.Budget{
		fixed("Emergencias", 500, 1),
	}, 300)

	assert.Equal(t, 300.0, allocations[0].AllocatedAmount)
	assert.Equal(t, 200.0, allocations[0].Deficit)
	assert.Equal(t, 60.0, allocations[0].Progress)
	assert.False(t, allocations[0].IsCompleted)
}

func TestAllocateBudgets_CascadaPorOrden(t *testing.T) {
	// Los fijos consumen por orden: el tercero solo recibe lo que queda
	allocations := AllocateBudgets([]models.Budget{
		fixed("Alquiler", 400, 1),
		fixed("Comida", 300, 2),
		fixed("Viajes", 500, 3),
	}, 800)

	assert.Equal(t, 400.0, allocations[0].AllocatedAmount)
	assert.Equal(t, 300.0, allocations[1].AllocatedAmount)
	assert.Equal(t, 100.0, allocations[2].AllocatedAmount)
	assert.Equal(t, 400.0, allocations[2].Deficit)
}

func TestAllocateBudgets_RepartoEntreIlimitados(t *testing.T) {
	// El sobrante se reparte en partes iguales entre los ilimitados
	allocations := AllocateBudgets([]models.Budget{
		fixed("Emergencias", 200, 1),
		unlimited("Ahorro", 2),
		unlimited("Inversión", 3),
	}, 800)

	assert.Equal(t, 300.0, allocations[1].AllocatedAmount)
	assert.Equal(t, 300.0, allocations[2].AllocatedAmount)
	assert.True(t, allocations[1].IsCompleted)
	assert.True(t, allocations[2].IsCompleted)
}

func TestAllocateBudgets_SinLiquidez(t *testing.T) {
	allocations := AllocateBudgets([]models.Budget{
		fixed("Emergencias", 500, 1),
		unlimited("Libre", 2),
	}, 0)

	assert.Equal(t, 0.0, allocations[0].AllocatedAmount)
	assert.Equal(t, 500.0, allocations[0].Deficit)
	assert.Equal(t, 0.0, allocations[1].AllocatedAmount)
	// Un ilimitado siempre se reporta completo, aun con cero asignado
	assert.True(t, allocations[1].IsCompleted)
}
