package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"plush-store/libs"
	"plush-store/models"
	"plush-store/repositories"
	"plush-store/services"
	"plush-store/utils"
)

type ProductController struct {
	Repo *repositories.ProductRepository
}

const productListCacheKey = "plush-store:products_list"

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	models.RedisClient.Del(context.Background(), productListCacheKey)
}

// @Summary List products
// @Description List products, optionally narrowed by search term or category/subcategory
// @Tags Products
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query string false "Filter by category"
// @Param subcategory query string false "Filter by subcategory"
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	search := c.Query("search")
	category := optionalQuery(c, "category")
	subcategory := optionalQuery(c, "subcategory")

	unfiltered := search == "" && category == nil && subcategory == nil

	if unfiltered && models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, productListCacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	var products []models.Product
	var err error
	switch {
	case search != "":
		products, err = ctrl.Repo.Search(ctx, search)
	case category != nil || subcategory != nil:
		products, err = ctrl.Repo.ListByCategory(ctx, category, subcategory)
	default:
		products, err = ctrl.Repo.ListAll(ctx)
	}
	if err != nil {
		// Catalog failures render as an empty storefront, never a 5xx.
		log.Printf("[Products] Failed to list products: %v", err)
		products = []models.Product{}
	}

	response := gin.H{"success": true, "message": "Products retrieved", "data": services.SortForDisplay(products)}

	if unfiltered && err == nil && models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, productListCacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product by ID
// @Description Get a single product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		log.Printf("[Products] Failed to get product: %v", err)
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// @Summary List categories
// @Description Distinct category values across the catalog
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	categories, err := ctrl.Repo.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("[Products] Failed to list categories: %v", err)
		categories = []string{}
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary List subcategories
// @Description Distinct subcategory values for one category
// @Tags Categories
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} models.Response
// @Router /categories/{category}/subcategories [get]
func (ctrl *ProductController) ListSubcategories(c *gin.Context) {
	subcategories, err := ctrl.Repo.ListSubcategories(c.Request.Context(), c.Param("category"))
	if err != nil {
		log.Printf("[Products] Failed to list subcategories: %v", err)
		subcategories = []string{}
	}

	c.JSON(200, gin.H{"success": true, "message": "Subcategories retrieved", "data": subcategories})
}

// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Images:      images,
	}

	if err := ctrl.Repo.Create(c.Request.Context(), product); err != nil {
		log.Printf("[Products] Failed to create product: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update an existing product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := ctrl.Repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Price must not be negative"})
			return
		}
		product.Price = *req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Subcategory != nil {
		if *req.Subcategory == "" {
			product.Subcategory = nil
		} else {
			product.Subcategory = req.Subcategory
		}
	}
	if req.Images != nil {
		product.Images = req.Images
	}

	if err := ctrl.Repo.Update(ctx, product); err != nil {
		log.Printf("[Products] Failed to update product: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Delete a product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	err := ctrl.Repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		log.Printf("[Products] Failed to delete product: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product deleted"})
}

// @Summary Upload product image
// @Description Attach an image to a product. Uses Cloudinary when configured, local storage otherwise (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/images [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := ctrl.Repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image file required"})
		return
	}

	var imageURL string
	if cld, cldErr := libs.NewCloudinaryService(); cldErr == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		imageURL, err = cld.UploadImage(ctx, file, fileHeader.Filename)
	} else {
		imageURL, err = utils.UploadFile(c, fileHeader, "products")
	}
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Failed to store image", "error": err.Error()})
		return
	}

	product.Images = append(product.Images, imageURL)
	if err := ctrl.Repo.Update(ctx, product); err != nil {
		log.Printf("[Products] Failed to attach image: %v", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Image uploaded", "data": product})
}

func optionalQuery(c *gin.Context, key string) *string {
	if value := c.Query(key); value != "" {
		return &value
	}
	return nil
}
