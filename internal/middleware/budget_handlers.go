package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var budgetRepo *repository.BudgetRepository

func InitBudgets() {
	budgetRepo = repository.NewBudgetRepository()
}

func CreateBudget(c *gin.Context) {
	var budget models.Budget
	if err := c.ShouldBindJSON(&budget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget.UserID = c.GetString("userId")

	if err := budgetRepo.CreateBudget(&budget); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Budget creado",
		"budget":  budget,
	})
}

// GetBudgets devuelve los budgets con su asignación en cascada calculada
func GetBudgets(c *gin.Context) {
	summary, err := budgetRepo.GetBudgetSummary(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular los budgets"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func UpdateBudget(c *gin.Context) {
	var budget models.Budget
	if err := c.ShouldBindJSON(&budget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget.ID = c.Param("id")
	budget.UserID = c.GetString("userId")

	if err := budgetRepo.UpdateBudget(&budget); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget actualizado"})
}

func DeleteBudget(c *gin.Context) {
	if err := budgetRepo.DeleteBudget(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget eliminado"})
}
