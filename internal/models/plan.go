package models

import "time"

// Plan é um produto recorrente vendido pela barbearia: por período de
// duration_days o assinante recebe total_credits usos de serviços do plano.
type Plan struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`

	DurationDays int  `gorm:"default:30" json:"duration_days"`
	TotalCredits int  `gorm:"default:4" json:"total_credits"`
	Active       bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
