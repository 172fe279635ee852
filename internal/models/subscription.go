package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `json:"barbershop_id"`
	ClientID     uint   `json:"client_id"`
	Client       Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`
	PlanID       uint   `json:"plan_id"`
	Plan         Plan   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plan"`

	Status           string `gorm:"size:20;default:'pending'" json:"status"`
	CreditsRemaining int    `gorm:"default:0" json:"credits_remaining"`
	AutoRenew        bool   `gorm:"default:true" json:"auto_renew"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// ID do preapproval no Mercado Pago.
	PreapprovalID string `gorm:"size:64;index" json:"preapproval_id"`

	LastPaymentDate *time.Time `json:"last_payment_date"`
	NextPaymentDate *time.Time `json:"next_payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
