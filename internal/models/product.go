package models

import "time"

// Product é um item de estoque vendido no balcão (pomada, shampoo etc).
type Product struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockMovement registra cada alteração de estoque com o saldo anterior e
// o novo, para auditoria.
type StockMovement struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `json:"barbershop_id"`
	ProductID    uint `gorm:"index" json:"product_id"`

	// entrada | saida | ajuste | perda | venda
	Kind     string `gorm:"size:20;not null" json:"kind"`
	Quantity int    `gorm:"not null" json:"quantity"`

	PreviousStock int `gorm:"not null" json:"previous_stock"`
	NewStock      int `gorm:"not null" json:"new_stock"`

	Reason string `gorm:"size:255" json:"reason"`
	UserID *uint  `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}
