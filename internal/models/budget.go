package models

import "time"

// Tipos de budget
const (
	BudgetTypeFixed     = "fixed"
	BudgetTypeUnlimited = "unlimited"
)

// Budget es un sobre de liquidez con prioridad; la asignación se calcula,
// nunca se guarda
type Budget struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name" binding:"required"`
	TargetAmount float64   `json:"target_amount"`
	Type         string    `json:"type"`
	Order        int       `json:"order"`
	Color        string    `json:"color,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BudgetAllocation es un budget con su asignación calculada en cascada
type BudgetAllocation struct {
	Budget
	AllocatedAmount float64 `json:"allocated_amount"`
	Progress        float64 `json:"progress"`
	IsCompleted     bool    `json:"is_completed"`
	Deficit         float64 `json:"deficit"`
}

// BudgetSummary es la respuesta completa del cálculo de budgets
type BudgetSummary struct {
	Budgets        []BudgetAllocation `json:"budgets"`
	TotalLiquidity float64            `json:"total_liquidity"`
	Unallocated    float64            `json:"unallocated"`
}
