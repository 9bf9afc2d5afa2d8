package routes

import (
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	// Inicializar repositorios
	middleware.InitAuth()
	middleware.InitAccounts()
	middleware.InitDCA()
	middleware.InitCrypto()
	middleware.InitSnapshots()
	middleware.InitBudgets()
	middleware.InitPartitaIVA()
	middleware.InitDashboard()

	router.POST("/signup", middleware.Signup)
	router.POST("/login", middleware.Login)
	router.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", middleware.GetMe)
		protected.PUT("/users", middleware.UpdateUser)
		protected.DELETE("/users", middleware.DeleteUser)
		protected.GET("/modules", middleware.GetModules)

		protected.GET("/accounts", middleware.GetAccounts)
		protected.POST("/accounts", middleware.CreateAccount)
		protected.PUT("/accounts/:id", middleware.UpdateAccount)
		protected.PUT("/accounts/:id/default", middleware.SetDefaultAccount)
		protected.DELETE("/accounts/:id", middleware.DeleteAccount)
		protected.POST("/accounts/recalculate", middleware.RecalculateBalances)

		protected.GET("/transfers", middleware.GetTransfers)
		protected.POST("/transfers", middleware.CreateTransfer)
		protected.DELETE("/transfers/:id", middleware.DeleteTransfer)

		protected.GET("/dca-portfolios", middleware.GetDCAPortfolios)
		protected.POST("/dca-portfolios", middleware.CreateDCAPortfolio)
		protected.GET("/dca-portfolios/:id", middleware.GetDCAPortfolio)
		protected.PUT("/dca-portfolios/:id", middleware.UpdateDCAPortfolio)
		protected.DELETE("/dca-portfolios/:id", middleware.DeleteDCAPortfolio)
		protected.POST("/dca-portfolios/:id/transactions", middleware.CreateDCATransaction)
		protected.DELETE("/dca-transactions/:txId", middleware.DeleteDCATransaction)
		protected.POST("/dca-portfolios/:id/fees", middleware.CreateNetworkFee)
		protected.DELETE("/network-fees/:feeId", middleware.DeleteNetworkFee)

		protected.GET("/crypto-portfolios", middleware.GetCryptoPortfolios)
		protected.POST("/crypto-portfolios", middleware.CreateCryptoPortfolio)
		protected.GET("/crypto-portfolios/:id", middleware.GetCryptoPortfolio)
		protected.PUT("/crypto-portfolios/:id", middleware.UpdateCryptoPortfolio)
		protected.DELETE("/crypto-portfolios/:id", middleware.DeleteCryptoPortfolio)
		protected.POST("/crypto-portfolios/:id/transactions", middleware.CreateCryptoTransaction)
		protected.DELETE("/crypto-transactions/:txId", middleware.DeleteCryptoTransaction)
		protected.POST("/crypto-portfolios/:id/swaps", middleware.CreateSwap)
		protected.DELETE("/swaps/:swapId", middleware.DeleteSwap)
		protected.POST("/crypto-portfolios/:id/recalculate", middleware.RecalculateHoldings)
		protected.POST("/crypto-portfolios/:id/import", middleware.ImportCryptoTransactions)

		protected.GET("/snapshots", middleware.GetSnapshots)
		protected.POST("/snapshots", middleware.CreateSnapshot)
		protected.DELETE("/snapshots/:id", middleware.DeleteSnapshot)
		protected.DELETE("/snapshots", middleware.DeleteAllSnapshots)
		protected.GET("/snapshots/export", middleware.ExportSnapshots)
		protected.POST("/snapshots/import", middleware.ImportSnapshots)
		protected.GET("/snapshot-settings", middleware.GetSnapshotSettings)
		protected.PUT("/snapshot-settings", middleware.UpdateSnapshotSettings)

		protected.GET("/budgets", middleware.GetBudgets)
		protected.POST("/budgets", middleware.CreateBudget)
		protected.PUT("/budgets/:id", middleware.UpdateBudget)
		protected.DELETE("/budgets/:id", middleware.DeleteBudget)

		protected.GET("/partita-iva/config", middleware.GetPartitaIVAConfig)
		protected.PUT("/partita-iva/config", middleware.UpdatePartitaIVAConfig)
		protected.GET("/partita-iva/incomes", middleware.GetPartitaIVAIncomes)
		protected.POST("/partita-iva/incomes", middleware.CreatePartitaIVAIncome)
		protected.DELETE("/partita-iva/incomes/:id", middleware.DeletePartitaIVAIncome)
		protected.POST("/partita-iva/incomes/import", middleware.ImportPartitaIVAIncomes)
		protected.GET("/partita-iva/payments", middleware.GetPartitaIVATaxPayments)
		protected.POST("/partita-iva/payments", middleware.CreatePartitaIVATaxPayment)
		protected.DELETE("/partita-iva/payments/:id", middleware.DeletePartitaIVATaxPayment)
		protected.GET("/partita-iva/stats", middleware.GetPartitaIVAStats)

		protected.GET("/dashboard", middleware.GetDashboard)

		protected.GET("/bitcoin-price", middleware.GetBitcoinPrice)
		protected.GET("/crypto-prices", middleware.GetCryptoPrices)
	}

	// El endpoint de cron queda detrás de la clave de administración para que
	// un scheduler externo pueda dispararlo sin token de usuario
	cron := router.Group("/api/cron")
	cron.Use(middleware.AdminAuth())
	{
		cron.POST("/holdings-snapshots", middleware.RunSnapshotCron)
		cron.GET("/holdings-snapshots", middleware.GetSnapshotCronStatus)
	}

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/users", middleware.GetUsers)
		admin.GET("/users/:id", middleware.GetUser)
		admin.DELETE("/users/:id", middleware.DeleteUserByAdmin)
		admin.GET("/users/email/:email", middleware.GetUserByEmail)
	}
}
