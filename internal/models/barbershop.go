package models

import "time"

type Barbershop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	Timezone          string `gorm:"size:50" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	// Quando true, agendamentos públicos nascem em pending_payment
	// e só confirmam após o webhook de pagamento.
	RequirePrepayment bool `gorm:"default:false" json:"require_prepayment"`

	// Credencial do Mercado Pago da própria barbearia (multi-tenant).
	MPAccessToken string `gorm:"size:255" json:"-"`

	// Pontos de fidelidade necessários para gerar uma recompensa.
	LoyaltyPointsPerReward int `gorm:"default:10" json:"loyalty_points_per_reward"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
