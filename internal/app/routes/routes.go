package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/qpsphere/paperbank/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	paperController *controllers.PaperController,
	uploadController *controllers.UploadController,
	contactController *controllers.ContactController,
) {
	// --- Catalog routes (public) ---
	api := router.Group("/api")
	{
		papers := api.Group("/papers")
		{
			papers.GET("", paperController.GetPapers)
			papers.GET("/suggest", paperController.Suggest)
			papers.GET("/stats", paperController.Stats)
			papers.GET("/:id", paperController.GetPaperByID)
		}

		api.POST("/upload", uploadController.UploadPaper)
	}

	// Contact relay keeps its historical top-level path.
	router.POST("/send", contactController.SendMessage)

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
