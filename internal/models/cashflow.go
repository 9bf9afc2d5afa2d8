package models

// CashFlowStats es el modelo "Enhanced Cash Flow": una vez recuperado el 100%
// del capital invertido mediante ventas, el valor restante es pura ganancia.
// Se recalcula en cada lectura, nunca se persiste por sí solo.
type CashFlowStats struct {
	TotalInvested       float64 `json:"total_invested"`
	TotalSold           float64 `json:"total_sold"`
	CapitalRecovered    float64 `json:"capital_recovered"`
	EffectiveInvestment float64 `json:"effective_investment"`
	RealizedProfit      float64 `json:"realized_profit"`
	IsFullyRecovered    bool    `json:"is_fully_recovered"`
	TotalValueEur       float64 `json:"total_value_eur"`
	UnrealizedGains     float64 `json:"unrealized_gains"`
	TotalROI            float64 `json:"total_roi"`
}
