package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/navalhadigital/barber-saas/internal/domain/inventory"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.Product, error) {

	var p models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", productID, barbershopID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *InventoryGormRepository) CreateProduct(
	ctx context.Context,
	p *models.Product,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InventoryGormRepository) UpdateProduct(
	ctx context.Context,
	p *models.Product,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *InventoryGormRepository) ListProducts(
	ctx context.Context,
	barbershopID uint,
) ([]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ApplyMovement re-lê o saldo com FOR UPDATE dentro da transação: dois
// movimentos simultâneos no mesmo produto serializam e o audit trail
// (previous/new) sai consistente.
func (r *InventoryGormRepository) ApplyMovement(
	ctx context.Context,
	m *models.StockMovement,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var p models.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barbershop_id = ?", m.ProductID, m.BarbershopID).
			First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("product_not_found")
			}
			return err
		}

		next, err := domain.NextStock(p.Stock, domain.Kind(m.Kind), m.Quantity)
		if err != nil {
			return err
		}

		m.PreviousStock = p.Stock
		m.NewStock = next

		if err := tx.Create(m).Error; err != nil {
			return err
		}

		return tx.Model(&p).UpdateColumn("stock", next).Error
	})
}

func (r *InventoryGormRepository) ListMovements(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) ([]models.StockMovement, error) {

	var movements []models.StockMovement
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND product_id = ?", barbershopID, productID).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Compile-time check
var _ domain.Repository = (*InventoryGormRepository)(nil)
