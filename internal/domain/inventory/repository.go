package inventory

import (
	"context"

	"github.com/navalhadigital/barber-saas/internal/models"
)

type Repository interface {
	GetProduct(ctx context.Context, barbershopID, productID uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	ListProducts(ctx context.Context, barbershopID uint) ([]models.Product, error)

	// ApplyMovement trava a linha do produto, grava o movimento com os
	// saldos anterior/novo e atualiza o estoque, tudo numa transação.
	ApplyMovement(ctx context.Context, m *models.StockMovement) error

	ListMovements(ctx context.Context, barbershopID, productID uint) ([]models.StockMovement, error)
}
