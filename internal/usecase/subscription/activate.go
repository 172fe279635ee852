package subscription

import (
	"context"
	"time"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
)

// Activate é a ativação manual pelo admin, para pagamentos fechados fora
// do processador (pix direto, dinheiro no balcão). Só funciona em
// assinaturas pendentes.
type Activate struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events pubsub.Broker
	now    func() time.Time
}

func NewActivate(repo domain.Repository, auditDisp *audit.Dispatcher, events pubsub.Broker) *Activate {
	return &Activate{repo: repo, audit: auditDisp, events: events, now: time.Now}
}

func (uc *Activate) Execute(
	ctx context.Context,
	barbershopID uint,
	subscriptionID uint,
	userID *uint,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetSubscription(ctx, barbershopID, subscriptionID)
	if err != nil {
		return nil, err
	}

	plan, err := uc.repo.GetPlan(ctx, barbershopID, sub.PlanID)
	if err != nil {
		return nil, err
	}

	if err := domain.Activate(sub, plan, uc.now()); err != nil {
		return nil, err
	}
	// Ativação manual não renova sozinha: sem preapproval no processador.
	sub.AutoRenew = false

	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: barbershopID,
			UserID:       userID,
			Action:       "subscription_activated",
			Entity:       "subscription",
			EntityID:     &sub.ID,
		})
	}
	if uc.events != nil {
		uc.events.Publish(barbershopID, "subscription.updated", sub)
	}
	return sub, nil
}
