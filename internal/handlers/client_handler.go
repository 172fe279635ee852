package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// clientRow é a linha da listagem: cliente + saldo de fidelidade.
type clientRow struct {
	models.Client
	LoyaltyPoints  int `json:"loyalty_points"`
	LoyaltyRewards int `json:"loyalty_rewards"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.Client{}).
		Select("clients.*, COALESCE(loyalties.points, 0) AS loyalty_points, COALESCE(loyalties.rewards, 0) AS loyalty_rewards").
		Joins("LEFT JOIN loyalties ON loyalties.client_id = clients.id AND loyalties.barbershop_id = clients.barbershop_id").
		Where("clients.barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(clients.name) LIKE ? OR clients.phone LIKE ? OR LOWER(clients.email) LIKE ?",
			like, like, like,
		)
	}

	var rows []clientRow
	if err := q.
		Order("clients.last_visit_at DESC NULLS LAST, clients.created_at DESC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ======================================================
// CLIENT DETAIL (histórico)
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	clientID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	var loyalty models.Loyalty
	h.db.Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
		First(&loyalty)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("Barber").
		Where("barbershop_id = ? AND client_id = ?", barbershopID, clientID).
		Order("scheduled_at DESC").
		Limit(20).
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": client,
		"loyalty": gin.H{
			"points":  loyalty.Points,
			"rewards": loyalty.Rewards,
		},
		"bookings": bookings,
	})
}
