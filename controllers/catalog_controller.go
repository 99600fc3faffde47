package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"plush-store/middleware"
	"plush-store/models"
	"plush-store/services"
)

// CatalogController exposes the per-session filter selection. Filter and
// search changes are applied directly from these handlers; the visible
// subset is derived fresh on every read.
type CatalogController struct {
	Catalogs *services.CatalogService
}

func (ctrl *CatalogController) session(c *gin.Context) *services.CatalogSession {
	return ctrl.Catalogs.Session(c.Request.Context(), middleware.SessionID(c))
}

// @Summary Visible catalog
// @Description Products matching this session's filter selection, in display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response
// @Router /catalog [get]
func (ctrl *CatalogController) GetVisible(c *gin.Context) {
	session := ctrl.session(c)
	category, subcategory, search := session.Selection()

	c.JSON(200, gin.H{
		"success": true,
		"message": "Catalog retrieved",
		"data": gin.H{
			"products": services.SortForDisplay(session.Visible()),
			"selection": gin.H{
				"category":    category,
				"subcategory": subcategory,
				"search":      search,
			},
			"categories": session.Categories(),
		},
	})
}

// @Summary Set category filter
// @Description Select a category and optional subcategory; changing category resets the subcategory
// @Tags Catalog
// @Accept json
// @Produce json
// @Param filter body models.FilterRequest true "Filter selection"
// @Success 200 {object} models.Response
// @Router /catalog/filter [put]
func (ctrl *CatalogController) SetFilter(c *gin.Context) {
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	session := ctrl.session(c)
	session.SetCategory(req.Category)
	if req.Subcategory != nil {
		session.SetSubcategory(req.Subcategory)
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Filter updated",
		"data":    gin.H{"products": services.SortForDisplay(session.Visible())},
	})
}

// @Summary Set search term
// @Description A non-blank term overrides the category selection entirely
// @Tags Catalog
// @Accept json
// @Produce json
// @Param search body models.SearchRequest true "Search term"
// @Success 200 {object} models.Response
// @Router /catalog/search [put]
func (ctrl *CatalogController) SetSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	session := ctrl.session(c)
	session.SetSearch(req.Term)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Search updated",
		"data":    gin.H{"products": services.SortForDisplay(session.Visible())},
	})
}

// @Summary Refresh catalog
// @Description Reload this session's catalog from the product source in the background
// @Tags Catalog
// @Produce json
// @Success 202 {object} models.Response
// @Router /catalog/refresh [post]
func (ctrl *CatalogController) Refresh(c *gin.Context) {
	// The fetch outlives this request, so it cannot use the request context.
	ctrl.session(c).Refresh(context.Background())
	c.JSON(202, gin.H{"success": true, "message": "Catalog refresh started"})
}

// @Summary Subcategories for a category
// @Description Distinct subcategory options within this session's catalog
// @Tags Catalog
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} models.Response
// @Router /catalog/categories/{category}/subcategories [get]
func (ctrl *CatalogController) GetSubcategories(c *gin.Context) {
	session := ctrl.session(c)
	c.JSON(200, gin.H{
		"success": true,
		"message": "Subcategories retrieved",
		"data":    session.Subcategories(c.Param("category")),
	})
}
