package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/storage"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

type BarbershopHandler struct {
	db       *gorm.DB
	uploader storage.Uploader
}

func NewBarbershopHandler(db *gorm.DB, uploader storage.Uploader) *BarbershopHandler {
	return &BarbershopHandler{db: db, uploader: uploader}
}

type UpdateBarbershopConfigRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	RequirePrepayment *bool   `json:"require_prepayment"`

	LoyaltyPointsPerReward *int `json:"loyalty_points_per_reward"`

	// Credencial do processador; nunca volta no JSON de resposta.
	MPAccessToken *string `json:"mp_access_token"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.RequirePrepayment != nil {
		shop.RequirePrepayment = *req.RequirePrepayment
	}

	if req.LoyaltyPointsPerReward != nil {
		if *req.LoyaltyPointsPerReward < 1 {
			httperr.BadRequest(c, "invalid_loyalty_threshold", "Pontos por recompensa deve ser positivo.")
			return
		}
		shop.LoyaltyPointsPerReward = *req.LoyaltyPointsPerReward
	}

	if req.MPAccessToken != nil {
		shop.MPAccessToken = *req.MPAccessToken
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// UploadLogo recebe multipart "logo", converte para webp e grava no S3.
func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	if h.uploader == nil {
		httperr.BadRequest(c, "storage_not_configured", "Upload de logo não configurado.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo de logo obrigatório.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}
	defer f.Close()

	url, err := storage.UploadLogo(c.Request.Context(), h.uploader, barbershopID, f)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "failed_to_upload_logo", "Erro ao enviar logo.")
		return
	}

	shop.LogoURL = url
	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
