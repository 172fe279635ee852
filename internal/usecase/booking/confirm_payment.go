package booking

import (
	"context"
	"log"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/payments"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
	"github.com/navalhadigital/barber-saas/internal/timezone"
)

// ConfirmPayment reconcilia webhooks de pagamento avulso do processador
// com o estado do agendamento. Entregas são at-least-once e podem chegar
// fora de ordem; o guard de idempotência é comparar o paymentStatus
// armazenado com o observado antes de mutar.
type ConfirmPayment struct {
	repo       domain.Repository
	processors payments.Factory
	notifier   *notify.Dispatcher
	events     pubsub.Broker
}

func NewConfirmPayment(
	repo domain.Repository,
	processors payments.Factory,
	notifier *notify.Dispatcher,
	events pubsub.Broker,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:       repo,
		processors: processors,
		notifier:   notifier,
		events:     events,
	}
}

// Execute devolve nil quando o webhook deve ser confirmado (200) e erro
// quando o processador deve reentregar (falha transitória). Referência
// não encontrada é logada e confirmada — reentregar não vai resolver.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	barbershopID uint,
	n *payments.Notification,
) error {

	paymentID, ok := n.PaymentID()
	if !ok {
		// Outros tipos de notificação são confirmados e ignorados.
		return nil
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if httperr.IsBusiness(err, "barbershop_not_found") {
			log.Printf("webhook: unknown shop %d, dropping payment %s", barbershopID, paymentID)
			return nil
		}
		return err
	}
	if shop.MPAccessToken == "" {
		log.Printf("webhook: shop %d has no payment credentials, dropping payment %s", barbershopID, paymentID)
		return nil
	}

	proc, err := uc.processors(shop.MPAccessToken)
	if err != nil {
		return err
	}

	// Consulta idempotente e sem efeito colateral no processador.
	p, err := proc.GetPayment(ctx, paymentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_payment_id") {
			log.Printf("webhook: malformed payment id %q, dropping", paymentID)
			return nil
		}
		return err
	}

	b, err := uc.repo.GetBookingByPaymentRef(ctx, barbershopID, p.ExternalReference)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			log.Printf("webhook: no booking for reference %q, dropping payment %s", p.ExternalReference, paymentID)
			return nil
		}
		return err
	}

	// Idempotência: mesma notificação (ou duplicata) não muda nada.
	if b.PaymentStatus == p.Status {
		return nil
	}

	b.PaymentStatus = p.Status
	b.PaymentID = p.ID

	confirmed := false
	if p.Status == domain.PaymentApproved {
		confirmed = domain.ConfirmPayment(b)
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return err
	}

	if uc.events != nil {
		uc.events.Publish(barbershopID, "booking.payment_updated", b)
	}

	// Só o caso "aguardava pagamento obrigatório" notifica; atualização
	// silenciosa para pagamento opcional de quem já estava agendado.
	if confirmed {
		svc, svcErr := uc.repo.GetService(ctx, barbershopID, b.ServiceID)
		client, cliErr := uc.repo.GetClient(ctx, barbershopID, b.ClientID)
		if svcErr == nil && cliErr == nil {
			uc.notifier.Dispatch(
				client.Phone,
				notify.BookingConfirmed(
					shop.Name,
					svc.Name,
					b.ScheduledAt.In(timezone.Location(shop.Timezone)),
				),
			)
		}
	}

	return nil
}
