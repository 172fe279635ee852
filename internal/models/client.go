package models

import "time"

// Cliente simples, sem login, vinculado à barbearia. O telefone é a chave
// natural: agendamentos públicos fazem upsert por (barbershop_id, phone).
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_clients_shop_phone" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index:idx_clients_shop_phone" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// Atualizado quando um agendamento é concluído; usado pelo job de
	// lembrete de retorno.
	LastVisitAt *time.Time `json:"last_visit_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
