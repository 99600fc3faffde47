package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"plush-store/config"
	"plush-store/middleware"
	"plush-store/models"
	"plush-store/routes"
	"plush-store/utils"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		utils.EnsureAdminHash()
		models.InitDB()
		models.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
