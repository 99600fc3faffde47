package controllers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"plush-store/config"
	"plush-store/middleware"
	"plush-store/models"
	"plush-store/repositories"
	"plush-store/services"
)

type CartController struct {
	Carts *services.CartService
	Repo  *repositories.ProductRepository
}

func (ctrl *CartController) engine(c *gin.Context) (*services.CartEngine, bool) {
	engine, err := ctrl.Carts.Engine(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		log.Printf("[Cart] Engine unavailable: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Cart unavailable"})
		return nil, false
	}
	return engine, true
}

func cartPayload(engine *services.CartEngine) models.CartResponse {
	return models.CartResponse{
		Items:      engine.Items(),
		TotalPrice: engine.TotalPrice(),
		TotalItems: engine.TotalItemCount(),
		IsOpen:     engine.IsOpen(),
	}
}

// @Summary Get cart
// @Description Current cart contents with derived totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cartPayload(engine)})
}

// @Summary Add item to cart
// @Description Add one unit of a product; repeated adds increment the quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body models.AddCartItemRequest true "Product to add"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.Repo.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		log.Printf("[Cart] Failed to load product %s: %v", req.ProductID, err)
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.AddItem(c.Request.Context(), *product)

	c.JSON(200, gin.H{"success": true, "message": "Item added", "data": cartPayload(engine)})
}

// @Summary Set item quantity
// @Description Set the quantity for a cart entry; zero or less removes it
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param quantity body models.SetQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)

	c.JSON(200, gin.H{"success": true, "message": "Quantity updated", "data": cartPayload(engine)})
}

// @Summary Remove item
// @Description Remove a cart entry entirely
// @Tags Cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(200, gin.H{"success": true, "message": "Item removed", "data": cartPayload(engine)})
}

// @Summary Clear cart
// @Description Empty the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.Clear(c.Request.Context())

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared", "data": cartPayload(engine)})
}

// @Summary Open cart drawer
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/open [post]
func (ctrl *CartController) OpenCart(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.Open()
	c.JSON(200, gin.H{"success": true, "message": "Cart opened", "data": cartPayload(engine)})
}

// @Summary Close cart drawer
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/close [post]
func (ctrl *CartController) CloseCart(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.Close()
	c.JSON(200, gin.H{"success": true, "message": "Cart closed", "data": cartPayload(engine)})
}

// @Summary Toggle cart drawer
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/toggle [post]
func (ctrl *CartController) ToggleCart(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}
	engine.Toggle()
	c.JSON(200, gin.H{"success": true, "message": "Cart toggled", "data": cartPayload(engine)})
}

// @Summary Checkout via WhatsApp
// @Description Compose the order message and the WhatsApp deep link for the current cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/checkout [post]
func (ctrl *CartController) Checkout(c *gin.Context) {
	engine, ok := ctrl.engine(c)
	if !ok {
		return
	}

	items := engine.Items()
	if len(items) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		return
	}

	orderMessage := services.BuildOrderMessage(items)
	c.JSON(200, gin.H{
		"success": true,
		"message": "Checkout ready",
		"data": models.CheckoutResponse{
			Message:     orderMessage,
			WhatsAppURL: services.WhatsAppLink(config.AppConfig.WhatsAppNumber, orderMessage),
		},
	})
}
