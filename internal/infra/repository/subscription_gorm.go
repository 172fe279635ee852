package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

func (r *SubscriptionGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *SubscriptionGormRepository) GetPlan(
	ctx context.Context,
	barbershopID uint,
	planID uint,
) (*models.Plan, error) {

	var plan models.Plan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", planID, barbershopID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("plan_not_found")
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *SubscriptionGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	return &client, nil
}

func (r *SubscriptionGormRepository) CreateSubscription(
	ctx context.Context,
	s *models.Subscription,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubscriptionGormRepository) UpdateSubscription(
	ctx context.Context,
	s *models.Subscription,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SubscriptionGormRepository) GetSubscription(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("subscription_not_found")
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) GetByPreapprovalID(
	ctx context.Context,
	barbershopID uint,
	preapprovalID string,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND preapproval_id = ?", barbershopID, preapprovalID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("subscription_not_found")
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) FindActiveForClientPlan(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
	planID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND client_id = ? AND plan_id = ? AND status IN ?",
			barbershopID, clientID, planID,
			[]string{string(domain.StatusPending), string(domain.StatusActive)},
		).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) ListForShop(
	ctx context.Context,
	barbershopID uint,
) ([]models.Subscription, error) {

	var subs []models.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Plan").
		Where("barbershop_id = ?", barbershopID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *SubscriptionGormRepository) SweepLapsed(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	canceled := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where(
			"status = ? AND auto_renew = false AND end_date < ?",
			string(domain.StatusActive), now,
		).
		UpdateColumn("status", string(domain.StatusCanceled))
	if canceled.Error != nil {
		return 0, canceled.Error
	}

	expired := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where(
			"status = ? AND auto_renew = true AND end_date < ?",
			string(domain.StatusActive), now,
		).
		UpdateColumn("status", string(domain.StatusExpired))
	if expired.Error != nil {
		return canceled.RowsAffected, expired.Error
	}

	return canceled.RowsAffected + expired.RowsAffected, nil
}

// Compile-time check
var _ domain.Repository = (*SubscriptionGormRepository)(nil)
