package repository

import (
	"log"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
)

// DashboardRepository agrega en una sola respuesta todo lo que consume la
// vista principal: cuentas, portafolios valorizados, budgets y fiscalidad
type DashboardRepository struct {
	accounts   *AccountRepository
	dca        *DCARepository
	crypto     *CryptoRepository
	budgets    *BudgetRepository
	partitaIVA *PartitaIVARepository
}

func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{
		accounts:   NewAccountRepository(),
		dca:        NewDCARepository(),
		crypto:     NewCryptoRepository(),
		budgets:    NewBudgetRepository(),
		partitaIVA: NewPartitaIVARepository(),
	}
}

func (r *DashboardRepository) GetDashboard(userID string) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{}
	var err error

	dashboard.Accounts, err = r.accounts.GetAccountsByUserId(userID)
	if err != nil {
		return nil, err
	}

	// Sin precio BTC los portafolios DCA se valorizan a 0, no es fatal
	btcPriceEur := 0.0
	if price, err := services.GetBitcoinPrice(); err == nil {
		dashboard.BTCPrice = price
		btcPriceEur = price.BTCPriceEUR
	} else {
		log.Printf("Dashboard sin precio BTC: %v", err)
	}

	dashboard.DCAPortfolios, err = r.dca.GetPortfoliosWithStats(userID, btcPriceEur)
	if err != nil {
		return nil, err
	}

	dashboard.CryptoPortfolios, err = r.crypto.GetPortfoliosWithStats(userID)
	if err != nil {
		return nil, err
	}

	budgetSummary, err := r.budgets.GetBudgetSummary(userID)
	if err != nil {
		return nil, err
	}
	dashboard.Budgets = *budgetSummary
	dashboard.TotalLiquidity = budgetSummary.TotalLiquidity

	pivaStats, err := r.partitaIVA.GetStats(userID, time.Now().Year())
	if err != nil {
		return nil, err
	}
	if pivaStats.NumeroFatture > 0 || pivaStats.NumeroPagamenti > 0 {
		dashboard.PartitaIVA = pivaStats
	}

	dashboard.Overall = services.CalculateOverallStats(dashboard.DCAPortfolios, dashboard.CryptoPortfolios)

	return dashboard, nil
}
