package models

// Dashboard agrega todo lo que necesita la vista principal en una llamada
type Dashboard struct {
	Accounts         []Account         `json:"accounts"`
	DCAPortfolios    []DCAPortfolio    `json:"dca_portfolios"`
	CryptoPortfolios []CryptoPortfolio `json:"crypto_portfolios"`
	Budgets          BudgetSummary     `json:"budgets"`
	PartitaIVA       *PartitaIVAStats  `json:"partita_iva,omitempty"`
	BTCPrice         *BitcoinPrice     `json:"btc_price,omitempty"`
	Overall          CashFlowStats     `json:"overall"`
	TotalLiquidity   float64           `json:"total_liquidity"`
}
