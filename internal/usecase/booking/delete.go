package booking

import (
	"context"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

type DeleteBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
	}
}

// Execute remove o agendamento em definitivo e avisa o cliente como num
// cancelamento. Crédito de plano consumido não é devolvido.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	bookingID uint,
) error {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return err
	}

	b, err := uc.repo.DeleteBooking(ctx, barbershopID, bookingID)
	if err != nil {
		return err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: barbershopID,
			UserID:       &userID,
			Action:       "booking_deleted",
			Entity:       "booking",
			EntityID:     &b.ID,
		})
	}

	if client, err := uc.repo.GetClient(ctx, barbershopID, b.ClientID); err == nil {
		uc.notifier.Dispatch(
			client.Phone,
			notify.BookingCanceled(shop.Name, b.ScheduledAt.In(timezone.Location(shop.Timezone))),
		)
	}

	return nil
}
