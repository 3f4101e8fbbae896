package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/services"
	"pasta_admin/internal/store"
)

type ProductHandler struct {
	store *store.Store
}

func NewProductHandler(st *store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

// List serves the public catalog: active products only, unless an admin
// asks for the full list with ?include_inactive=true.
func (h *ProductHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && services.IsAdmin(middleware.CurrentUser(c))
	c.JSON(http.StatusOK, h.store.Products(!includeInactive))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	product, ok := h.store.ProductByID(id)
	if !ok || (!product.IsActive && !services.IsAdmin(middleware.CurrentUser(c))) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		Price        int64  `json:"price"`
		Category     string `json:"category"`
		ImageURL     string `json:"image_url"`
		IsVegetarian bool   `json:"is_vegetarian"`
		IsFeatured   bool   `json:"is_featured"`
		UnitSize     string `json:"unit_size"`
		Stock        int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.store.CreateProduct(store.NewProduct{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsVegetarian: req.IsVegetarian,
		IsFeatured:   req.IsFeatured,
		UnitSize:     req.UnitSize,
		Stock:        req.Stock,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		Price        *int64  `json:"price"`
		Category     *string `json:"category"`
		ImageURL     *string `json:"image_url"`
		IsVegetarian *bool   `json:"is_vegetarian"`
		IsFeatured   *bool   `json:"is_featured"`
		IsActive     *bool   `json:"is_active"`
		UnitSize     *string `json:"unit_size"`
		Stock        *int    `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	patch := store.ProductPatch(req)

	product, err := h.store.UpdateProduct(id, patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete deactivates the product. Historical orders keep referencing it.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.store.DeactivateProduct(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	return uint(id), err
}
