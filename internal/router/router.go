package router

import (
	"time"

	"github.com/RafaelCassiano30011/box-menager/internal/config"
	"github.com/RafaelCassiano30011/box-menager/internal/handler"
	"github.com/RafaelCassiano30011/box-menager/internal/middleware"
	"github.com/RafaelCassiano30011/box-menager/internal/repository"
	"github.com/RafaelCassiano30011/box-menager/internal/service"
	"github.com/RafaelCassiano30011/box-menager/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New builds the Gin engine with all middleware, repositories, services and
// routes wired together.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(),
		middleware.RateLimiter(300, time.Minute),
	)

	// Repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Services
	productSvc := service.NewProductService(productRepo)
	stockSvc := service.NewStockService(productRepo, movementRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, dispatcher)
	reportSvc := service.NewReportService(saleRepo, productRepo, movementRepo, rdb, cfg.ReportStoragePath)

	// Handlers
	products := handler.NewProductsHandler(productSvc, stockSvc)
	sales := handler.NewSalesHandler(saleSvc)
	stock := handler.NewStockHandler(stockSvc)
	reports := handler.NewReportsHandler(reportSvc, productSvc)
	categories := handler.NewCategoriesHandler(categoryRepo)
	health := handler.NewHealthHandler(db, rdb)

	r.GET("/health", health.Health)

	api := r.Group("/api")
	{
		api.POST("/products", products.CreateProduct)
		api.GET("/products", products.ListProducts)
		api.GET("/products/:id", products.GetProduct)
		api.PUT("/products/:id", products.UpdateProduct)
		api.DELETE("/products/:id", products.DeleteProduct)
		api.GET("/products/:id/stock-movements", products.ProductStockHistory)
		api.GET("/products/:id/variations/:variationId/stock", stock.GetAvailable)
		api.GET("/variations", products.ListVariations)

		api.POST("/categories", categories.CreateCategory)
		api.GET("/categories", categories.ListCategories)

		api.POST("/sales", sales.CreateSale)
		api.GET("/sales", sales.ListSales)
		api.GET("/sales/:id", sales.GetSale)

		api.POST("/stock-movements", stock.CreateMovement)
		api.GET("/stock-movements", stock.ListMovements)

		api.GET("/dashboard/metrics", reports.DashboardMetrics)
		api.GET("/dashboard/low-stock", reports.LowStock)
		api.GET("/dashboard/recent-sales", reports.RecentSales)

		api.GET("/reports/sales", reports.SalesReport)
		api.GET("/reports/sales/export", reports.ExportSalesPDF)
		api.GET("/reports/top-products", reports.TopProducts)
	}

	// Swagger UI only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
