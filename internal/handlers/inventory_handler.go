package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/navalhadigital/barber-saas/internal/domain/inventory"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/httpresp"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/usecase/inventory"
)

// ======================================================
// HANDLER
// ======================================================

type InventoryHandler struct {
	repo      domain.Repository
	moveStock *inventory.MoveStock
}

func NewInventoryHandler(repo domain.Repository, moveStock *inventory.MoveStock) *InventoryHandler {
	return &InventoryHandler{repo: repo, moveStock: moveStock}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type StockMovementRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}

// ======================================================
// PRODUCTS
// ======================================================

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	products, err := h.repo.ListProducts(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	httpresp.List(c, products)
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p := &models.Product{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Active:       true,
	}

	if err := h.repo.CreateProduct(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar produto.")
		return
	}

	httpresp.Created(c, p)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.repo.GetProduct(c.Request.Context(), barbershopID, productID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	// Stock nunca é editado aqui: todo ajuste passa por movimento.
	if err := h.repo.UpdateProduct(c.Request.Context(), p); err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// STOCK MOVEMENTS
// ======================================================

func (h *InventoryHandler) MoveStock(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	m, err := h.moveStock.Execute(c.Request.Context(), inventory.MoveStockInput{
		BarbershopID: barbershopID,
		ProductID:    productID,
		Kind:         req.Kind,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		UserID:       &userID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, m)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	movements, err := h.repo.ListMovements(c.Request.Context(), barbershopID, productID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_movements", "Erro ao listar movimentos.")
		return
	}

	c.JSON(http.StatusOK, movements)
}
