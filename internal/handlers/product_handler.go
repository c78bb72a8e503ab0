package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mughal/internal/pagination"
	"mughal/internal/services"
)

// ProductHandler handles catalogue requests.
type ProductHandler struct {
	inventoryService services.InventoryServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(inventoryService services.InventoryServicer) *ProductHandler {
	return &ProductHandler{inventoryService: inventoryService}
}

// ProductRequest represents the request payload for creating or updating a product
type ProductRequest struct {
	SKU            string          `json:"sku" binding:"required,max=64"`
	Name           string          `json:"name" binding:"required,max=200"`
	Category       string          `json:"category" binding:"max=100"`
	CostPrice      decimal.Decimal `json:"costPrice" binding:"gte=0"`
	RetailPrice    decimal.Decimal `json:"retailPrice" binding:"gte=0"`
	WholesalePrice decimal.Decimal `json:"wholesalePrice" binding:"gte=0"`
	Stock          int             `json:"stock"`
	MinStock       int             `json:"minStock" binding:"gte=0"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{
		SKU:            r.SKU,
		Name:           r.Name,
		Category:       r.Category,
		CostPrice:      r.CostPrice,
		RetailPrice:    r.RetailPrice,
		WholesalePrice: r.WholesalePrice,
		Stock:          r.Stock,
		MinStock:       r.MinStock,
	}
}

// ListProducts handles the inventory listing
// @Summary     List products
// @Description Get the catalogue with margins and stock value, optionally filtered by a search term or to low-stock items
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       q         query string false "Search by name or SKU"
// @Param       low_stock query bool   false "Only products at or below their reorder threshold"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[reports.ProductLine] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	lowStock := c.Query("low_stock") == "true"
	result, err := h.inventoryService.List(c.Request.Context(), c.Query("q"), lowStock, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct handles the retrieval of a single product
// @Summary     Get product
// @Description Get a product by ID
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} models.Product "Product details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.inventoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct handles adding a product to the catalogue
// @Summary     Create product
// @Description Add a product to the catalogue
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Duplicate SKU"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, err := h.inventoryService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles replacing a product's editable fields
// @Summary     Update product
// @Description Update a product. Stock set here is an adjustment and records no transaction.
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Product ID"
// @Param       request body ProductRequest true "Product details"
// @Success     200 {object} models.Product "Product updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	product, err := h.inventoryService.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
