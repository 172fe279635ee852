package subscription

import (
	"context"
	"time"

	"github.com/navalhadigital/barber-saas/internal/models"
)

type Repository interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)

	GetPlan(ctx context.Context, barbershopID, planID uint) (*models.Plan, error)
	GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)

	CreateSubscription(ctx context.Context, s *models.Subscription) error
	UpdateSubscription(ctx context.Context, s *models.Subscription) error

	GetSubscription(ctx context.Context, barbershopID, id uint) (*models.Subscription, error)
	GetByPreapprovalID(ctx context.Context, barbershopID uint, preapprovalID string) (*models.Subscription, error)

	// FindActiveForClientPlan devolve (nil, nil) quando não existe
	// assinatura pendente ou ativa do cliente para o plano.
	FindActiveForClientPlan(ctx context.Context, barbershopID, clientID, planID uint) (*models.Subscription, error)

	ListForShop(ctx context.Context, barbershopID uint) ([]models.Subscription, error)

	// SweepLapsed encerra assinaturas vencidas: sem auto-renew viram
	// canceled, com auto-renew atrasado viram expired (aguardando o
	// webhook de renovação, que pode reativá-las).
	SweepLapsed(ctx context.Context, now time.Time) (int64, error)
}
