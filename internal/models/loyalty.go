package models

import "time"

// Loyalty acumula pontos por cliente em cada barbearia. A cada
// LoyaltyPointsPerReward pontos o cliente ganha uma recompensa, que pode
// ser trocada por um agendamento gratuito.
type Loyalty struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_loyalty_shop_client" json:"barbershop_id"`
	ClientID     uint `gorm:"uniqueIndex:idx_loyalty_shop_client" json:"client_id"`

	Points  int `gorm:"default:0" json:"points"`
	Rewards int `gorm:"default:0" json:"rewards"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
