package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"plush-store/config"
	"plush-store/controllers"
	"plush-store/middleware"
	"plush-store/models"
	"plush-store/repositories"
	"plush-store/services"
)

func SetupRoutes(router *gin.Engine) {
	productRepo := repositories.NewProductRepository()

	cartStore := repositories.NewRedisStore(models.RedisClient, config.AppConfig.CartTTL)
	cartService, err := services.NewCartService(cartStore)
	if err != nil {
		// A nil store means the engine was never wired up; nothing works
		// without it, so fail loudly at boot.
		log.Fatalf("Failed to initialize cart service: %v", err)
	}
	catalogService := services.NewCatalogService(productRepo)

	authCtrl := &controllers.AuthController{}
	productCtrl := &controllers.ProductController{Repo: productRepo}
	cartCtrl := &controllers.CartController{Carts: cartService, Repo: productRepo}
	catalogCtrl := &controllers.CatalogController{Catalogs: catalogService}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/login", authCtrl.Login)

	router.GET("/products", productCtrl.ListProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/categories", productCtrl.ListCategories)
	router.GET("/categories/:category/subcategories", productCtrl.ListSubcategories)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/cart", cartCtrl.GetCart)
		session.POST("/cart/items", cartCtrl.AddItem)
		session.PATCH("/cart/items/:id", cartCtrl.SetQuantity)
		session.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		session.DELETE("/cart", cartCtrl.ClearCart)
		session.POST("/cart/open", cartCtrl.OpenCart)
		session.POST("/cart/close", cartCtrl.CloseCart)
		session.POST("/cart/toggle", cartCtrl.ToggleCart)
		session.POST("/cart/checkout", cartCtrl.Checkout)

		session.GET("/catalog", catalogCtrl.GetVisible)
		session.PUT("/catalog/filter", catalogCtrl.SetFilter)
		session.PUT("/catalog/search", catalogCtrl.SetSearch)
		session.POST("/catalog/refresh", catalogCtrl.Refresh)
		session.GET("/catalog/categories/:category/subcategories", catalogCtrl.GetSubcategories)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.POST("/products/:id/images", productCtrl.UploadProductImage)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}
