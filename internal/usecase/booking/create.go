package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/notify"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
	"github.com/navalhadigital/barber-saas/internal/timezone"
	"github.com/navalhadigital/barber-saas/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string

	// Caminho administrativo: pode forçar conflito, retroagir e fixar
	// status explícito. O caminho público ignora estes campos.
	Admin  bool
	Force  bool
	Status domain.Status

	UseLoyaltyReward bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	events   pubsub.Broker
}

func NewCreateBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notify.Dispatcher,
	events pubsub.Broker,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		events:   events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(shop.Timezone)

	// --------------------------------------------------
	// 3. Antecedência mínima (só no caminho público)
	// --------------------------------------------------
	if !in.Admin {
		minAdvance := shop.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// 4. Barbeiro e serviço
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5. Expediente do barbeiro (só no caminho público)
	// --------------------------------------------------
	if !in.Admin {
		ok, err := uc.repo.IsWithinWorkingHours(ctx, in.BarberID, start, end)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("outside_working_hours")
		}
	}

	// --------------------------------------------------
	// 6. Cliente (upsert por telefone)
	// --------------------------------------------------
	phone := validators.NormalizePhone(in.ClientPhone)
	if in.ClientName == "" || phone == "" {
		return nil, httperr.ErrBusiness("missing_contact")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx, in.BarbershopID, in.ClientName, phone, in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Resolução de pagamento/crédito — exclusiva, nesta ordem:
	//    recompensa de fidelidade > crédito de plano > serviço avulso
	// --------------------------------------------------
	b := &models.Booking{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    svc.ID,
		ScheduledAt:  start,
		EndTime:      end,
		Status:       string(domain.StatusBooked),
		PaymentRef:   uuid.NewString(),
		Notes:        in.Notes,
	}

	opts := domain.CreateOptions{Force: in.Admin && in.Force, Now: now}

	switch {
	case in.UseLoyaltyReward:
		loyalty, err := uc.repo.GetLoyalty(ctx, in.BarbershopID, client.ID)
		if err != nil {
			return nil, err
		}
		if loyalty == nil || loyalty.Rewards <= 0 {
			return nil, httperr.ErrBusiness("no_rewards")
		}

		opts.RedeemLoyalty = true
		b.IsLoyaltyReward = true
		b.PaymentStatus = domain.PaymentLoyaltyReward
		if in.Admin {
			b.Status = string(domain.StatusCompleted)
			b.CompletedAt = &now
		} else {
			b.Status = string(domain.StatusConfirmed)
		}

	case svc.IsPlanService && svc.PlanID != nil:
		sub, err := uc.repo.FindConsumableSubscription(
			ctx, in.BarbershopID, client.ID, *svc.PlanID, now,
		)
		if err != nil {
			return nil, err
		}

		if sub != nil {
			opts.ConsumeSubscriptionID = &sub.ID
			b.SubscriptionID = &sub.ID
			b.PaymentStatus = domain.PaymentPlanCredit
			b.Status = string(domain.StatusConfirmed)
		} else if !opts.Force {
			return nil, httperr.ErrBusiness("no_active_subscription")
		} else {
			b.PaymentStatus = domain.PaymentNone
		}

	default:
		if in.Admin {
			b.PaymentStatus = domain.PaymentNone
		} else if shop.RequirePrepayment {
			b.Status = string(domain.StatusPendingPayment)
		}
	}

	// Status explícito do admin vence a resolução acima.
	if in.Admin && in.Status != "" {
		if !domain.IsValidStatus(in.Status) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		b.Status = string(in.Status)
		if in.Status == domain.StatusCompleted && b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	}

	// --------------------------------------------------
	// 8. Escrita atômica (conflito + créditos + insert)
	// --------------------------------------------------
	if err := uc.repo.CreateBooking(ctx, b, opts); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Auditoria, eventos e notificação (melhor-esforço)
	// --------------------------------------------------
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.BarbershopID,
			Action:       "booking_created",
			Entity:       "booking",
			EntityID:     &b.ID,
		})
	}

	if uc.events != nil {
		uc.events.Publish(in.BarbershopID, "booking.created", b)
	}

	// Só o autoatendimento notifica; lançamento manual do admin não.
	if !in.Admin {
		uc.notifier.Dispatch(
			client.Phone,
			notify.BookingReceived(shop.Name, svc.Name, start),
		)
	}

	return b, nil
}
