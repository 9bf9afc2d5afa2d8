package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var (
	accountRepo  *repository.AccountRepository
	transferRepo *repository.TransferRepository
)

func InitAccounts() {
	accountRepo = repository.NewAccountRepository()
	transferRepo = repository.NewTransferRepository()
}

func CreateAccount(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account.UserID = c.GetString("userId")

	if err := accountRepo.CreateAccount(&account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cuenta creada exitosamente",
		"account": account,
	})
}

func GetAccounts(c *gin.Context) {
	accounts, err := accountRepo.GetAccountsByUserId(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las cuentas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func UpdateAccount(c *gin.Context) {
	var account models.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account.ID = c.Param("id")
	account.UserID = c.GetString("userId")

	if err := accountRepo.UpdateAccount(&account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cuenta actualizada",
		"account": account,
	})
}

func SetDefaultAccount(c *gin.Context) {
	if err := accountRepo.SetDefaultAccount(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cuenta predeterminada actualizada"})
}

func DeleteAccount(c *gin.Context) {
	if err := accountRepo.DeleteAccount(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cuenta eliminada"})
}

// RecalculateBalances reconstruye los saldos del usuario desde el historial
func RecalculateBalances(c *gin.Context) {
	accounts, err := accountRepo.RecalculateBalances(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al recalcular los saldos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Saldos recalculados",
		"accounts": accounts,
	})
}

func CreateTransfer(c *gin.Context) {
	var transfer models.Transfer
	if err := c.ShouldBindJSON(&transfer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer.UserID = c.GetString("userId")

	if err := transferRepo.CreateTransfer(&transfer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Transferencia realizada",
		"transfer": transfer,
	})
}

func GetTransfers(c *gin.Context) {
	transfers, err := transferRepo.GetTransfersByUserId(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las transferencias"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transfers": transfers})
}

func DeleteTransfer(c *gin.Context) {
	if err := transferRepo.DeleteTransfer(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transferencia eliminada y saldo revertido"})
}
