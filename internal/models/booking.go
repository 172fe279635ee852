package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint `gorm:"index:idx_bookings_slot" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledAt time.Time `gorm:"index:idx_bookings_slot" json:"scheduled_at"`
	EndTime     time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'booked'" json:"status"`
	PaymentStatus string `gorm:"size:30" json:"payment_status"`

	// Referência opaca enviada ao Mercado Pago como external_reference;
	// o webhook a usa para localizar este agendamento.
	PaymentRef string `gorm:"size:64;index" json:"payment_ref"`
	// ID do pagamento no processador, preenchido pelo webhook.
	PaymentID string `gorm:"size:64" json:"payment_id"`

	SubscriptionID  *uint `json:"subscription_id"`
	IsLoyaltyReward bool  `gorm:"default:false" json:"is_loyalty_reward"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
