package http

import (
	"github.com/gin-gonic/gin"

	"github.com/promoprecio/backend/config"
	"github.com/promoprecio/backend/internal/domain"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, cache domain.CacheRepository) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Read-through cache for the read-heavy search and comparison routes
	cached := CacheMiddleware(cache, cfg.Cache.TTL)

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		produtos := v1.Group("/produtos")
		{
			produtos.POST("", handler.CreateProduct)
			produtos.GET("", handler.ListProducts)
			produtos.GET("/:id", handler.GetProduct)
			produtos.PUT("/:id", handler.UpdateProduct)
			produtos.DELETE("/:id", handler.DeleteProduct)
			produtos.GET("/:id/comparar", cached, handler.CompareProduct)
			produtos.GET("/:id/historico", cached, handler.PriceHistory)
		}

		estabelecimentos := v1.Group("/estabelecimentos")
		{
			estabelecimentos.POST("", handler.CreateEstablishment)
			estabelecimentos.GET("", handler.ListEstablishments)
			estabelecimentos.GET("/:id", handler.GetEstablishment)
			estabelecimentos.PUT("/:id", handler.UpdateEstablishment)
			estabelecimentos.DELETE("/:id", handler.DeleteEstablishment)
		}

		precos := v1.Group("/precos")
		{
			precos.POST("", handler.RecordPrice)
			precos.GET("", handler.ListPrices)
		}

		busca := v1.Group("/busca")
		{
			busca.GET("", cached, handler.SearchProducts)
			busca.GET("/estabelecimentos", cached, handler.SearchEstablishments)
		}

		v1.GET("/comparar", cached, handler.CompareByTerm)

		listas := v1.Group("/listas")
		{
			listas.POST("", handler.CreateList)
			listas.GET("", handler.ListLists)
			listas.GET("/:id", handler.GetList)
			listas.DELETE("/:id", handler.DeactivateList)
			listas.POST("/:id/itens", handler.AddListItem)
			listas.PUT("/:id/itens/:itemID", handler.UpdateListItem)
			listas.DELETE("/:id/itens/:itemID", handler.RemoveListItem)
			listas.GET("/:id/comparar", cached, handler.CompareList)
		}
	}

	return router
}
