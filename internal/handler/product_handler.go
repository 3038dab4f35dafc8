package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"miniinventory/internal/model"
	"miniinventory/internal/service"
)

// ProductHandler serves product CRUD and search.
type ProductHandler struct {
	svc service.InventoryService
}

// NewProductHandler creates a product handler.
func NewProductHandler(svc service.InventoryService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ProductRequest is the editable part of a product. The bounds mirror
// model.MaxQuantity and model.MaxPrice, which the service enforces for every caller.
type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"max=255"`
	Quantity int     `json:"quantity" validate:"min=0,max=1000000"`
	Price    float64 `json:"price" validate:"min=0,max=10000000"`
}

func (r ProductRequest) input() model.ProductInput {
	return model.ProductInput{
		Name:     r.Name,
		Category: r.Category,
		Quantity: r.Quantity,
		Price:    decimal.NewFromFloat(r.Price).Round(2),
	}
}

// ProductListResponse is a list of products.
type ProductListResponse struct {
	Total    int             `json:"total"`
	Products []model.Product `json:"products"`
}

// ListProducts godoc
// @Summary List products, newest first
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-sensitive substring of name or category"
// @Success 200 {object} ProductListResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return errorResponse(err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, ProductListResponse{Total: len(products), Products: products})
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Add product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product payload"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	product, err := h.svc.Insert(c.Request().Context(), req.input())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Product payload"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	ctx := c.Request().Context()
	if err := h.svc.Update(ctx, id, req.input()); err != nil {
		return errorResponse(err)
	}
	product, err := h.svc.Get(ctx, id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product deleted"})
}
