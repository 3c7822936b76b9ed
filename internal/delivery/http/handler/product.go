package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/request"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/response"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/usecase/product"
)

// ProductsPath is the collection path products are exposed under
const ProductsPath = "/api/v1/products"

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *product.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// CreateProductRequest documents the body for creating a product
type CreateProductRequest struct {
	Name         string  `json:"nome" example:"Teclado"`
	Description  string  `json:"descricao" example:"Teclado mecanico ABNT2"`
	Ean13        string  `json:"ean13" example:"7891234567895"`
	Price        float64 `json:"preco" example:"199.9"`
	Quantity     float64 `json:"quantidade" example:"10"`
	StockMinimum float64 `json:"estoqueMin" example:"2"`
}

// UpdateProductRequest documents the body for a partial update; every field is optional
type UpdateProductRequest struct {
	Description  *string  `json:"descricao,omitempty"`
	Price        *float64 `json:"preco,omitempty"`
	Quantity     *float64 `json:"quantidade,omitempty"`
	StockMinimum *float64 `json:"estoqueMin,omitempty"`
}

// UpdateStatusRequest documents the body for a status change
type UpdateStatusRequest struct {
	Active bool `json:"lativo"`
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create an inactive product. Name and ean13 must be unique.
// @Tags Products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} map[string]interface{} "Product created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := request.DecodeFields(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), fields)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, created, productLocation(created))
}

// CreateBatch handles POST /api/v1/products/batch
// @Summary Create products in batch
// @Description Create each product independently; the result lists one outcome per item in input order
// @Tags Products
// @Accept json
// @Produce json
// @Param products body []CreateProductRequest true "Products"
// @Success 201 {object} map[string]interface{} "Per-item outcomes"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /products/batch [post]
func (h *ProductHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	items, err := request.DecodeFieldList(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results := h.service.CreateBatch(r.Context(), items)

	var locations []string
	for _, res := range results {
		if p, ok := res.Data.(*domain.Product); ok && res.Succeeded() {
			locations = append(locations, productLocation(p))
		}
	}
	if len(locations) > 0 {
		w.Header().Set("Location", strings.Join(locations, ", "))
	}

	writeBatch(w, http.StatusCreated, results)
}

// GetByHash handles GET /api/v1/products/{hash}
// @Summary Get a product by hash
// @Tags Products
// @Produce json
// @Param hash path string true "Product hash (UUID)"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 400 {object} map[string]string "Invalid hash"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{hash} [get]
func (h *ProductHandler) GetByHash(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	found, err := h.service.GetByHash(r.Context(), hash)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetActiveByHash handles GET /api/v1/products/{hash}/active
// @Summary Get an active product by hash
// @Tags Products
// @Produce json
// @Param hash path string true "Product hash (UUID)"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product is not active"
// @Router /products/{hash}/active [get]
func (h *ProductHandler) GetActiveByHash(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	found, err := h.service.GetActiveByHash(r.Context(), hash)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, found)
}

// List handles GET /api/v1/products
// @Summary List products
// @Description List every product, or filter with status=active|inactive or the low-stock flag
// @Tags Products
// @Produce json
// @Param status query string false "active or inactive"
// @Param low-stock query bool false "Only active products below minimum stock"
// @Success 200 {object} map[string]interface{} "List of products"
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if request.GetBoolQuery(r, "low-stock") {
		h.ListLowStock(w, r)
		return
	}

	switch r.URL.Query().Get("status") {
	case "":
	case "active":
		h.listByStatus(w, r, true)
		return
	case "inactive":
		h.listByStatus(w, r, false)
		return
	default:
		response.Error(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	products, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, products)
}

// ListActive handles GET /api/v1/products/active
// @Summary List active products
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{} "List of products"
// @Router /products/active [get]
func (h *ProductHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, true)
}

// ListInactive handles GET /api/v1/products/inactive
// @Summary List inactive products
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{} "List of products"
// @Router /products/inactive [get]
func (h *ProductHandler) ListInactive(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, false)
}

// ListLowStock handles GET /api/v1/products/low-stock
// @Summary List active products below their minimum stock
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{} "List of products"
// @Router /products/low-stock [get]
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLowStock(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, products)
}

func (h *ProductHandler) listByStatus(w http.ResponseWriter, r *http.Request, active bool) {
	products, err := h.service.ListByStatus(r.Context(), active)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, products)
}

// Update handles PUT /api/v1/products/{hash}
// @Summary Update a product
// @Description Partially update description, price, quantity or minimum stock of an active product
// @Tags Products
// @Accept json
// @Produce json
// @Param hash path string true "Product hash (UUID)"
// @Param product body UpdateProductRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Product updated successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product is not active"
// @Router /products/{hash} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	fields, err := request.DecodeFields(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), hash, fields)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// UpdateStatus handles PUT /api/v1/products/{hash}/status
// @Summary Activate or deactivate a product
// @Tags Products
// @Accept json
// @Produce json
// @Param hash path string true "Product hash (UUID)"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{} "Product status updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{hash}/status [put]
func (h *ProductHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	fields, err := request.DecodeFields(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), hash, fields)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Deactivate handles PUT /api/v1/products/{hash}/deactivate
// @Summary Deactivate a product
// @Tags Products
// @Produce json
// @Param hash path string true "Product hash (UUID)"
// @Success 200 {object} map[string]interface{} "Product deactivated"
// @Failure 400 {object} map[string]string "Invalid product hash"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{hash}/deactivate [put]
func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	updated, err := h.service.Deactivate(r.Context(), hash)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// AdjustPriceBatch handles PUT /api/v1/products/batch/price
// @Summary Adjust prices in batch
// @Description Items carry hash, operacao (fixo, aumentar-valor, diminuir-valor, aumentar-percentualmente, diminuir-percentualmente) and valor
// @Tags Products
// @Accept json
// @Produce json
// @Param items body []domain.BatchAdjustment true "Adjustments"
// @Success 200 {object} map[string]interface{} "Per-item outcomes"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /products/batch/price [put]
func (h *ProductHandler) AdjustPriceBatch(w http.ResponseWriter, r *http.Request) {
	items, err := request.DecodeFieldList(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writeBatch(w, http.StatusOK, h.service.AdjustPriceBatch(r.Context(), items))
}

// AdjustStockBatch handles PUT /api/v1/products/batch/stock
// @Summary Adjust stock in batch
// @Description Items carry hash and a signed, non-zero valor added to the quantity
// @Tags Products
// @Accept json
// @Produce json
// @Param items body []domain.BatchAdjustment true "Adjustments"
// @Success 200 {object} map[string]interface{} "Per-item outcomes"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /products/batch/stock [put]
func (h *ProductHandler) AdjustStockBatch(w http.ResponseWriter, r *http.Request) {
	items, err := request.DecodeFieldList(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writeBatch(w, http.StatusOK, h.service.AdjustStockBatch(r.Context(), items))
}

// Delete handles DELETE /api/v1/products/{hash}
// @Summary Delete a product
// @Tags Products
// @Param hash path string true "Product hash (UUID)"
// @Success 204 "Product deleted successfully"
// @Failure 400 {object} map[string]string "Invalid product hash"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{hash} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hash, err := request.GetParam(r, "hash")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product hash")
		return
	}

	if err := h.service.Delete(r.Context(), hash); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInactive):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeBatch(w http.ResponseWriter, status int, results []product.BatchResult) {
	succeeded := 0
	for _, res := range results {
		if res.Succeeded() {
			succeeded++
		}
	}
	response.Batch(w, status, results, succeeded, len(results)-succeeded)
}

func productLocation(p *domain.Product) string {
	return ProductsPath + "/" + p.Hash.String()
}
