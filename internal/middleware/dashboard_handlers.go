package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var dashboardRepo *repository.DashboardRepository

func InitDashboard() {
	dashboardRepo = repository.NewDashboardRepository()
}

// GetDashboard arma la vista principal completa en una sola llamada
func GetDashboard(c *gin.Context) {
	dashboard, err := dashboardRepo.GetDashboard(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al armar el dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
