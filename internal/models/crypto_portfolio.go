package models

import "time"

// Tipos de transacción crypto
const (
	TransactionTypeBuy         = "buy"
	TransactionTypeSell        = "sell"
	TransactionTypeStakeReward = "stake_reward"
	TransactionTypeSwapIn      = "swap_in"
	TransactionTypeSwapOut     = "swap_out"
)

// CryptoPortfolio representa un portafolio multi-activo con holdings por asset
type CryptoPortfolio struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AccountID string    `json:"account_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	CreatedAt time.Time `json:"created_at"`

	Holdings     []CryptoHolding              `json:"holdings,omitempty"`
	Transactions []CryptoPortfolioTransaction `json:"transactions,omitempty"`
	Stats        *CryptoPortfolioStats        `json:"stats,omitempty"`
}

// CryptoAsset es un activo registrado por símbolo (se auto-crea al importar)
type CryptoAsset struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	IsActive bool   `json:"is_active"`
}

// CryptoPortfolioTransaction es un movimiento del libro mayor del portafolio
type CryptoPortfolioTransaction struct {
	ID           string    `json:"id"`
	PortfolioID  string    `json:"portfolio_id"`
	AssetID      string    `json:"asset_id"`
	AssetSymbol  string    `json:"asset_symbol,omitempty"`
	Type         string    `json:"type"`
	Quantity     float64   `json:"quantity"`
	EurValue     float64   `json:"eur_value"`
	PricePerUnit float64   `json:"price_per_unit"`
	SwapPairID   string    `json:"swap_pair_id,omitempty"`
	Broker       string    `json:"broker,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// CryptoHolding es el agregado materializado por (portfolio, asset),
// recalculado desde el historial completo después de cada escritura
type CryptoHolding struct {
	ID            string    `json:"id"`
	PortfolioID   string    `json:"portfolio_id"`
	AssetID       string    `json:"asset_id"`
	AssetSymbol   string    `json:"asset_symbol,omitempty"`
	Quantity      float64   `json:"quantity"`
	AvgPrice      float64   `json:"avg_price"`
	TotalInvested float64   `json:"total_invested"`
	RealizedGains float64   `json:"realized_gains"`
	LastUpdated   time.Time `json:"last_updated"`
}

// CryptoPortfolioStats combina holdings valorizados y Enhanced Cash Flow
type CryptoPortfolioStats struct {
	TotalValueEur float64 `json:"total_value_eur"`
	RealizedGains float64 `json:"realized_gains"`

	TransactionCount int `json:"transaction_count"`
	BuyCount         int `json:"buy_count"`
	SellCount        int `json:"sell_count"`
	StakeRewardCount int `json:"stake_reward_count"`
	HoldingsCount    int `json:"holdings_count"`

	CashFlow CashFlowStats `json:"cash_flow"`
}
