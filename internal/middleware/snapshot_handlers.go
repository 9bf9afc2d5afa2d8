package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

var (
	snapshotRepo *repository.SnapshotRepository
	importRepo   *repository.ImportRepository
)

func InitSnapshots() {
	snapshotRepo = repository.NewSnapshotRepository()
	importRepo = repository.NewImportRepository()
}

func GetSnapshots(c *gin.Context) {
	snapshots, err := snapshotRepo.GetSnapshotsByUserId(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los snapshots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// CreateSnapshot crea un snapshot manual valorizado al precio actual
func CreateSnapshot(c *gin.Context) {
	var body struct {
		Note string `json:"note"`
	}
	// El cuerpo es opcional
	c.ShouldBindJSON(&body)

	snapshot, err := snapshotRepo.CreateValuedSnapshot(c.GetString("userId"), body.Note, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Snapshot creado",
		"snapshot": snapshot,
	})
}

func DeleteSnapshot(c *gin.Context) {
	if err := snapshotRepo.DeleteSnapshot(c.Param("id"), c.GetString("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot eliminado"})
}

func DeleteAllSnapshots(c *gin.Context) {
	deleted, err := snapshotRepo.DeleteAllSnapshots(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar los snapshots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Snapshots eliminados",
		"deleted": deleted,
	})
}

// ExportSnapshots genera el CSV con el mismo esquema que acepta el importador
func ExportSnapshots(c *gin.Context) {
	snapshots, err := snapshotRepo.GetSnapshotsByUserId(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los snapshots"})
		return
	}

	var b strings.Builder
	b.WriteString("Date,Time,BTCUSD,Dirty Dollars,Dirty Euro,BTC\n")
	for _, snapshot := range snapshots {
		b.WriteString(fmt.Sprintf("%s,%s,%.2f,%.2f,%.2f,%.8f\n",
			snapshot.Date.Format("2006-01-02"),
			snapshot.Date.Format("15:04"),
			snapshot.BTCUSD,
			snapshot.DirtyDollars,
			snapshot.DirtyEuro,
			snapshot.BTC,
		))
	}

	c.Header("Content-Disposition", `attachment; filename="holdings_snapshots.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(b.String()))
}

// ImportSnapshots recibe las filas CSV ya parseadas por el cliente
func ImportSnapshots(c *gin.Context) {
	var rows []map[string]string
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := importRepo.ImportSnapshots(c.GetString("userId"), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}

func GetSnapshotSettings(c *gin.Context) {
	settings, err := snapshotRepo.GetSettings(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la configuración"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func UpdateSnapshotSettings(c *gin.Context) {
	var settings models.SnapshotSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings.UserID = c.GetString("userId")

	if err := snapshotRepo.UpdateSettings(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Configuración actualizada",
		"settings": settings,
	})
}

// RunSnapshotCron dispara la corrida de snapshots automáticos para todos los
// usuarios con automatización activada. ?force=true saltea la verificación.
func RunSnapshotCron(c *gin.Context) {
	force := c.Query("force") == "true"

	summary, err := snapshotRepo.RunAutomation(force)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"processed": summary.Processed,
		"created":   summary.Created,
		"results":   summary.Results,
	})
}

// GetSnapshotCronStatus es la variante de solo lectura: qué haría la próxima
// corrida sin crear nada
func GetSnapshotCronStatus(c *gin.Context) {
	results, err := snapshotRepo.AutomationStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}
