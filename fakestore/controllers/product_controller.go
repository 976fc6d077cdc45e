package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shajib07/storefront/fakestore/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// ListProducts returns the full catalog.
func (pc *ProductController) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, pc.catalog.List())
}

// GetProduct returns a single product by id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := pc.catalog.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListCategories returns the category names.
func (pc *ProductController) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, pc.catalog.Categories())
}

// ListByCategory returns products belonging to one category.
func (pc *ProductController) ListByCategory(c *gin.Context) {
	c.JSON(http.StatusOK, pc.catalog.ByCategory(c.Param("category")))
}
