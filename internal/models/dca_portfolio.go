package models

import "time"

// Tipos de transacción DCA
const (
	DCATransactionTypeBuy  = "buy"
	DCATransactionTypeSell = "sell"
)

// DCAPortfolio representa un portafolio de acumulación de Bitcoin
type DCAPortfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AccountID string    `json:"account_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`

	Transactions []DCATransaction `json:"transactions,omitempty"`
	NetworkFees  []NetworkFee     `json:"network_fees,omitempty"`
	Stats        *DCAStats        `json:"stats,omitempty"`
}

// DCATransaction es una compra o venta de BTC contra EUR
type DCATransaction struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id"`
	Type        string    `json:"type"`
	BTCQuantity float64   `json:"btc_quantity" binding:"required,gt=0"`
	EurPaid     float64   `json:"eur_paid" binding:"required,gt=0"`
	Date        time.Time `json:"date"`
	Broker      string    `json:"broker,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NetworkFee es BTC consumido por comisiones on-chain, no un flujo de caja
type NetworkFee struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id"`
	Sats        int64     `json:"sats" binding:"required,gt=0"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DCAStats son las estadísticas derivadas de un portafolio DCA
type DCAStats struct {
	TotalBTC      float64 `json:"total_btc"`
	TotalEUR      float64 `json:"total_eur"`
	TotalFeesSats int64   `json:"total_fees_sats"`
	TotalFeesBTC  float64 `json:"total_fees_btc"`
	NetBTC        float64 `json:"net_btc"`
	AvgPrice      float64 `json:"avg_price"`

	TransactionCount int `json:"transaction_count"`
	BuyCount         int `json:"buy_count"`
	SellCount        int `json:"sell_count"`
	FeesCount        int `json:"fees_count"`

	CashFlow CashFlowStats `json:"cash_flow"`
}
