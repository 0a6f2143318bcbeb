package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pscosmeticos/pkg/logger"
	"pscosmeticos/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin.
// Чтение каталога публично, мутирующие маршруты закрыты JWT-токеном.
func SetupRoutes(
	apiVersion string,
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	subCategoryHandler *SubCategoryHandler,
	productHandler *ProductHandler,
	imageHandler *ImageHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("catalog"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/" + apiVersion)
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "UP",
				"timestamp": time.Now().Format(time.RFC3339),
			})
		})

		api.POST("/login", authHandler.Login)

		api.GET("/categorias", categoryHandler.List)
		api.GET("/categorias/subcategorias/:id", categoryHandler.SubCategories)
		api.GET("/subcategorias", subCategoryHandler.List)
		api.GET("/produtos", productHandler.List)
		api.GET("/produtos/:id", productHandler.Get)
		api.GET("/image/:name", imageHandler.Get)

		// Защищенные эндпоинты (требуют аутентификации)
		protected := api.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/categorias", categoryHandler.Create)
			protected.PUT("/categorias", categoryHandler.Edit)
			protected.DELETE("/categorias/:id", categoryHandler.Delete)

			protected.POST("/subcategorias", subCategoryHandler.Create)

			protected.POST("/produtos", productHandler.Create)
			protected.PUT("/produtos/:id", productHandler.Edit)
			protected.DELETE("/produtos/:id", productHandler.Delete)
		}
	}

	return router
}
