package models

import "time"

// Tipos de cuenta soportados
const (
	AccountTypeBank       = "bank"
	AccountTypeInvestment = "investment"
)

// Account representa una cuenta bancaria o de inversión del usuario
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name" binding:"required"`
	Type      string    `json:"type"`
	Balance   float64   `json:"balance"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Transfer mueve saldo entre dos cuentas, sin vínculo con portfolios
type Transfer struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	FromAccountID string    `json:"from_account_id" binding:"required"`
	ToAccountID   string    `json:"to_account_id" binding:"required"`
	CreatedAt     time.Time `json:"created_at"`
}
