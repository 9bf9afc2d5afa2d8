package middleware

import (
	"log"
	"net/http"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

var dcaRepo *repository.DCARepository

func InitDCA() {
	dcaRepo = repository.NewDCARepository()
}

// btcPriceEurOrZero obtiene el precio BTC/EUR; si el proveedor falla, los
// portafolios se valorizan a 0 en vez de romper la respuesta
func btcPriceEurOrZero() float64 {
	price, err := services.GetBitcoinPrice()
	if err != nil {
		log.Printf("Precio BTC no disponible: %v", err)
		return 0
	}
	return price.BTCPriceEUR
}

func CreateDCAPortfolio(c *gin.Context) {
	var portfolio models.DCAPortfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portfolio.UserID = c.GetString("userId")

	if err := dcaRepo.CreatePortfolio(&portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Portafolio DCA creado",
		"portfolio": portfolio,
	})
}

func GetDCAPortfolios(c *gin.Context) {
	portfolios, err := dcaRepo.GetPortfoliosWithStats(c.GetString("userId"), btcPriceEurOrZero())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los portafolios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

func GetDCAPortfolio(c *gin.Context) {
	portfolio, err := dcaRepo.GetPortfolioWithStats(c.Param("id"), c.GetString("userId"), btcPriceEurOrZero())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

func UpdateDCAPortfolio(c *gin.Context) {
	var portfolio models.DCAPortfolio
	if err := c.ShouldBindJSON(&portfolio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	portfolio.ID = c.Param("id")
	portfolio.UserID = c.GetString("userId")

	if err := dcaRepo.UpdatePortfolio(&portfolio); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portafolio actualizado"})
}

func DeleteDCAPortfolio(c *gin.Context) {
	if err := dcaRepo.DeletePortfolio(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portafolio eliminado"})
}

func CreateDCATransaction(c *gin.Context) {
	var transaction models.DCATransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction.PortfolioID = c.Param("id")

	if err := dcaRepo.CreateTransaction(c.GetString("userId"), &transaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transacción creada exitosamente",
		"transaction": transaction,
	})
}

func DeleteDCATransaction(c *gin.Context) {
	if err := dcaRepo.DeleteTransaction(c.Param("txId"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transacción eliminada y saldo revertido"})
}

func CreateNetworkFee(c *gin.Context) {
	var fee models.NetworkFee
	if err := c.ShouldBindJSON(&fee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fee.PortfolioID = c.Param("id")

	if err := dcaRepo.CreateNetworkFee(c.GetString("userId"), &fee); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comisión de red registrada",
		"fee":     fee,
	})
}

func DeleteNetworkFee(c *gin.Context) {
	if err := dcaRepo.DeleteNetworkFee(c.Param("feeId"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comisión eliminada"})
}
