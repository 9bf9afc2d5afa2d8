package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var partitaIVARepo *repository.PartitaIVARepository

func InitPartitaIVA() {
	partitaIVARepo = repository.NewPartitaIVARepository()
}

// annoFromQuery lee ?anno=YYYY con el año corriente como valor por defecto
func annoFromQuery(c *gin.Context) int {
	if anno, err := strconv.Atoi(c.Query("anno")); err == nil && anno > 0 {
		return anno
	}
	return time.Now().Year()
}

func GetPartitaIVAConfig(c *gin.Context) {
	config, err := partitaIVARepo.GetConfig(c.GetString("userId"), annoFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la configuración"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": config})
}

func UpdatePartitaIVAConfig(c *gin.Context) {
	var config models.PartitaIVAConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.UserID = c.GetString("userId")
	if config.Anno == 0 {
		config.Anno = time.Now().Year()
	}

	if err := partitaIVARepo.UpdateConfig(&config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuración actualizada",
		"config":  config,
	})
}

func CreatePartitaIVAIncome(c *gin.Context) {
	var income models.PartitaIVAIncome
	if err := c.ShouldBindJSON(&income); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	income.UserID = c.GetString("userId")

	if err := partitaIVARepo.CreateIncome(&income); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Entrada registrada",
		"income":  income,
	})
}

func GetPartitaIVAIncomes(c *gin.Context) {
	incomes, err := partitaIVARepo.GetIncomesByUserId(c.GetString("userId"), annoFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las entradas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incomes": incomes})
}

func DeletePartitaIVAIncome(c *gin.Context) {
	if err := partitaIVARepo.DeleteIncome(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entrada eliminada"})
}

func CreatePartitaIVATaxPayment(c *gin.Context) {
	var payment models.PartitaIVATaxPayment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment.UserID = c.GetString("userId")

	if err := partitaIVARepo.CreateTaxPayment(&payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pago registrado",
		"payment": payment,
	})
}

func GetPartitaIVATaxPayments(c *gin.Context) {
	payments, err := partitaIVARepo.GetTaxPaymentsByUserId(c.GetString("userId"), annoFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los pagos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func DeletePartitaIVATaxPayment(c *gin.Context) {
	if err := partitaIVARepo.DeleteTaxPayment(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}

func GetPartitaIVAStats(c *gin.Context) {
	stats, err := partitaIVARepo.GetStats(c.GetString("userId"), annoFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular las estadísticas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ImportPartitaIVAIncomes recibe las filas CSV ya parseadas por el cliente
func ImportPartitaIVAIncomes(c *gin.Context) {
	var rows []map[string]string
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := importRepo.ImportPartitaIVAIncomes(c.GetString("userId"), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}
