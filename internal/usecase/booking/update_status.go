package booking

import (
	"context"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	events   pubsub.Broker
}

func NewUpdateStatus(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notify.Dispatcher,
	events pubsub.Broker,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		events:   events,
	}
}

// Execute aplica a troca de status pedida pelo admin, validada pela
// máquina de estados (AdminSet). Transição para canceled dispara a
// notificação de cancelamento.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	bookingID uint,
	target domain.Status,
) (*models.Booking, error) {

	if !domain.IsValidStatus(target) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, barbershopID, bookingID)
	if err != nil {
		return nil, err
	}

	current := domain.Status(b.Status)
	if err := domain.AdminSet(current, target); err != nil {
		return nil, err
	}

	if current == target {
		return b, nil
	}

	now := timezone.NowIn(shop.Timezone)
	b.Status = string(target)

	switch target {
	case domain.StatusCanceled:
		b.CancelledAt = &now
	case domain.StatusCompleted:
		b.CompletedAt = &now
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	// Conclusão pontua fidelidade e marca a visita do cliente.
	if target == domain.StatusCompleted && !b.IsLoyaltyReward {
		if err := uc.repo.AccrueLoyalty(ctx, barbershopID, b.ClientID, shop.LoyaltyPointsPerReward); err != nil {
			return nil, err
		}
		if err := uc.repo.MarkClientVisit(ctx, b.ClientID, now); err != nil {
			return nil, err
		}
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: barbershopID,
			UserID:       &userID,
			Action:       "booking_status_" + string(target),
			Entity:       "booking",
			EntityID:     &b.ID,
		})
	}

	if uc.events != nil {
		uc.events.Publish(barbershopID, "booking.status_changed", b)
	}

	if target == domain.StatusCanceled {
		if client, err := uc.repo.GetClient(ctx, barbershopID, b.ClientID); err == nil {
			uc.notifier.Dispatch(
				client.Phone,
				notify.BookingCanceled(shop.Name, b.ScheduledAt.In(timezone.Location(shop.Timezone))),
			)
		}
	}

	return b, nil
}
