package subscription

import (
	"context"
	"log"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/payments"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
)

// Reconcile é a única porta de entrada para webhooks de assinatura: tanto
// mudanças de status do preapproval quanto pagamentos recorrentes caem
// aqui e o estado local é trazido para o estado observado no processador.
// Entregas são at-least-once; RenewalDue evita creditar duas vezes.
type Reconcile struct {
	repo       domain.Repository
	processors payments.Factory
	events     pubsub.Broker
	now        func() time.Time
}

func NewReconcile(
	repo domain.Repository,
	processors payments.Factory,
	events pubsub.Broker,
) *Reconcile {
	return &Reconcile{
		repo:       repo,
		processors: processors,
		events:     events,
		now:        time.Now,
	}
}

// Execute devolve nil quando o webhook deve ser confirmado (200) e erro
// quando o processador deve reentregar. Assinatura não encontrada é
// logada e confirmada — reentregar não vai resolver.
func (uc *Reconcile) Execute(
	ctx context.Context,
	barbershopID uint,
	n *payments.Notification,
) error {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if httperr.IsBusiness(err, "barbershop_not_found") {
			log.Printf("webhook: unknown shop %d, dropping subscription event", barbershopID)
			return nil
		}
		return err
	}
	if shop.MPAccessToken == "" {
		log.Printf("webhook: shop %d has no payment credentials, dropping subscription event", barbershopID)
		return nil
	}

	proc, err := uc.processors(shop.MPAccessToken)
	if err != nil {
		return err
	}

	sub, err := uc.resolveSubscription(ctx, barbershopID, n, proc)
	if err != nil {
		return err
	}
	if sub == nil {
		// Nada para casar com esse webhook; confirma e segue.
		return nil
	}
	if sub.PreapprovalID == "" {
		// Checkout interrompido antes de gravar o preapproval; backfill
		// quando a notificação trouxer o id.
		preID, ok := n.PreapprovalID()
		if !ok {
			log.Printf("webhook: subscription %d has no preapproval id, dropping", sub.ID)
			return nil
		}
		sub.PreapprovalID = preID
	}

	pre, err := proc.GetPreapproval(ctx, sub.PreapprovalID)
	if err != nil {
		return err
	}

	plan, err := uc.repo.GetPlan(ctx, barbershopID, sub.PlanID)
	if err != nil {
		return err
	}

	now := uc.now()
	changed := false

	switch pre.Status {
	case "authorized":
		switch domain.Status(sub.Status) {
		case domain.StatusPending:
			if err := domain.Activate(sub, plan, now); err != nil {
				return err
			}
			changed = true
		case domain.StatusActive, domain.StatusExpired:
			if domain.RenewalDue(sub, now) {
				if err := domain.Renew(sub, plan, now); err != nil {
					return err
				}
				changed = true
			}
		}

	case "paused", "cancelled":
		// O assinante desligou no processador: para de renovar mas os
		// créditos já pagos continuam válidos até endDate.
		if sub.AutoRenew {
			domain.CancelRenewal(sub)
			changed = true
		}
	}

	if !changed {
		return nil
	}

	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	if uc.events != nil {
		uc.events.Publish(barbershopID, "subscription.updated", sub)
	}
	return nil
}

// resolveSubscription acha a assinatura local referida pelo webhook.
// Notificações de preapproval trazem o id direto; pagamentos recorrentes
// trazem só o payment id, e a ligação vem do external_reference que
// gravamos no checkout. Devolve (nil, nil) quando nada casa.
func (uc *Reconcile) resolveSubscription(
	ctx context.Context,
	barbershopID uint,
	n *payments.Notification,
	proc payments.Processor,
) (*models.Subscription, error) {

	if preID, ok := n.PreapprovalID(); ok {
		sub, err := uc.repo.GetByPreapprovalID(ctx, barbershopID, preID)
		if err != nil {
			if httperr.IsBusiness(err, "subscription_not_found") {
				log.Printf("webhook: no subscription for preapproval %q, dropping", preID)
				return nil, nil
			}
			return nil, err
		}
		return sub, nil
	}

	if !n.IsPaymentKind() {
		return nil, nil
	}

	paymentID, ok := n.PaymentID()
	if !ok {
		return nil, nil
	}

	p, err := proc.GetPayment(ctx, paymentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_payment_id") {
			log.Printf("webhook: malformed payment id %q, dropping", paymentID)
			return nil, nil
		}
		return nil, err
	}

	subID, ok := decodeExternalRef(p.ExternalReference)
	if !ok {
		// Pagamento avulso ou referência de outro fluxo.
		return nil, nil
	}

	sub, err := uc.repo.GetSubscription(ctx, barbershopID, subID)
	if err != nil {
		if httperr.IsBusiness(err, "subscription_not_found") {
			log.Printf("webhook: payment %s references unknown subscription %d, dropping", paymentID, subID)
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}
