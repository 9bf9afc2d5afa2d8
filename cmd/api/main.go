package main

import (
	"log"
	"os"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/repository"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/scheduler"
	routes "github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/server"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Admin-Key"}
	config.AllowCredentials = true
	config.ExposeHeaders = []string{"Content-Length", "Content-Disposition"}
	router.Use(cors.New(config))

	// Inicializar base de datos
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	// Configurar las rutas (inicializa los repositorios)
	routes.RegisterRoutes(router)

	// Scheduler interno: revisa cada 15 minutos qué usuarios tienen un
	// snapshot automático pendiente
	jobs := scheduler.New()
	if err := jobs.AddJob("*/15 * * * *", scheduler.NewSnapshotJob(repository.NewSnapshotRepository())); err != nil {
		log.Fatalf("Error al registrar el job de snapshots: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Iniciar el servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}
