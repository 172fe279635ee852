package subscription

import (
	"context"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

// CancelRenewal desliga a renovação de uma assinatura pelo painel admin.
// Créditos e vigência ficam intactos até endDate.
type CancelRenewal struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelRenewal(repo domain.Repository, auditDisp *audit.Dispatcher) *CancelRenewal {
	return &CancelRenewal{repo: repo, audit: auditDisp}
}

func (uc *CancelRenewal) Execute(
	ctx context.Context,
	barbershopID uint,
	subscriptionID uint,
	userID *uint,
) (*models.Subscription, error) {

	sub, err := uc.repo.GetSubscription(ctx, barbershopID, subscriptionID)
	if err != nil {
		return nil, err
	}

	switch domain.Status(sub.Status) {
	case domain.StatusCanceled:
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if !sub.AutoRenew {
		// Já estava desligada; idempotente.
		return sub, nil
	}

	domain.CancelRenewal(sub)
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: barbershopID,
			UserID:       userID,
			Action:       "subscription_renewal_canceled",
			Entity:       "subscription",
			EntityID:     &sub.ID,
		})
	}
	return sub, nil
}
