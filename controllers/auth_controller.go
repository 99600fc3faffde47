package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"plush-store/config"
	"plush-store/models"
	"plush-store/utils"
)

type AuthController struct{}

// @Summary Admin login
// @Description Authenticate the store admin and issue a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cfg := config.AppConfig
	if cfg.AdminPasswordHash == "" {
		c.JSON(401, gin.H{"success": false, "message": "Admin login is not configured"})
		return
	}

	ok, err := utils.VerifyPassword(cfg.AdminPasswordHash, req.Password)
	if err != nil {
		log.Printf("[Auth] Password verification failed: %v", err)
		ok = false
	}
	if req.Email != cfg.AdminEmail || !ok {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(req.Email, "admin")
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    models.LoginResponse{Token: token, Email: req.Email},
	})
}
