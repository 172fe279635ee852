package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/models"
)

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

// --------- Requests ---------

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required"`
	DurationDays int     `json:"duration_days" binding:"required,min=1"`
	TotalCredits int     `json:"total_credits" binding:"required,min=1"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	DurationDays *int     `json:"duration_days,omitempty"`
	TotalCredits *int     `json:"total_credits,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// ListPublic lista os planos ativos para a página de assinatura.
func (h *PlanHandler) ListPublic(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var plans []models.Plan
	if err := h.db.
		Where("barbershop_id = ? AND active = true", shopID).
		Order("price ASC").
		Find(&plans).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var plans []models.Plan
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&plans).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	plan := models.Plan{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		TotalCredits: req.TotalCredits,
		Active:       true,
	}

	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_plan"})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id := c.Param("id")

	var plan models.Plan
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&plan).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_plan"})
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Alterar duração/créditos só afeta ativações e renovações futuras;
	// assinaturas vigentes mantêm o que compraram.
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.TotalCredits != nil {
		plan.TotalCredits = *req.TotalCredits
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}
