package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var cryptoRepo *repository.CryptoRepository

func InitCrypto() {
	cryptoRepo = repository.NewCryptoRepository()
}

func CreateCryptoPortfolio(c *gin.Context) {
	var portfolio models.CryptoPortfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portfolio.UserID = c.GetString("userId")

	if err := cryptoRepo.CreatePortfolio(&portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Portafolio crypto creado",
		"portfolio": portfolio,
	})
}

func GetCryptoPortfolios(c *gin.Context) {
	portfolios, err := cryptoRepo.GetPortfoliosWithStats(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los portafolios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

func GetCryptoPortfolio(c *gin.Context) {
	portfolio, err := cryptoRepo.GetPortfolioWithStats(c.Param("id"), c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

func UpdateCryptoPortfolio(c *gin.Context) {
	var portfolio models.CryptoPortfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portfolio.ID = c.Param("id")
	portfolio.UserID = c.GetString("userId")

	if err := cryptoRepo.UpdatePortfolio(&portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portafolio actualizado"})
}

func DeleteCryptoPortfolio(c *gin.Context) {
	if err := cryptoRepo.DeletePortfolio(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portafolio eliminado"})
}

func CreateCryptoTransaction(c *gin.Context) {
	var transaction models.CryptoPortfolioTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction.PortfolioID = c.Param("id")

	if err := cryptoRepo.CreateTransaction(c.GetString("userId"), &transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transacción creada exitosamente",
		"transaction": transaction,
	})
}

func DeleteCryptoTransaction(c *gin.Context) {
	if err := cryptoRepo.DeleteTransaction(c.Param("txId"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transacción eliminada"})
}

// CreateSwap registra el intercambio entre dos activos como un par
// swap_out/swap_in atómico
func CreateSwap(c *gin.Context) {
	var req repository.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.PortfolioID = c.Param("id")

	swapPairID, err := cryptoRepo.CreateSwap(c.GetString("userId"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Swap registrado",
		"swap_pair_id": swapPairID,
	})
}

func DeleteSwap(c *gin.Context) {
	if err := cryptoRepo.DeleteSwap(c.Param("swapId"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Swap eliminado y holdings recalculados"})
}

// RecalculateHoldings reconstruye los holdings del portafolio desde el
// historial completo de transacciones
func RecalculateHoldings(c *gin.Context) {
	if err := cryptoRepo.RecalculateHoldings(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holdings recalculados"})
}

// ImportCryptoTransactions recibe las filas CSV ya parseadas por el cliente
func ImportCryptoTransactions(c *gin.Context) {
	var rows []map[string]string
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := importRepo.ImportCryptoTransactions(c.GetString("userId"), c.Param("id"), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}
