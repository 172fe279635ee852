package booking

import (
	"context"
	"time"

	"github.com/navalhadigital/barber-saas/internal/models"
)

// CreateOptions controla a escrita atômica do agendamento. Tudo que está
// aqui acontece na mesma transação do insert: checagem de conflito,
// débito de crédito e resgate de recompensa.
type CreateOptions struct {
	// Pula a checagem de conflito de horário (override administrativo).
	Force bool

	// Quando presente, debita exatamente 1 crédito desta assinatura,
	// re-checando status ativo, vigência e saldo no momento da escrita.
	ConsumeSubscriptionID *uint

	// Quando true, debita 1 recompensa de fidelidade do cliente.
	RedeemLoyalty bool

	Now time.Time
}

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)

	// -------- Barber / Service --------
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error)
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)

	// -------- Subscription / Loyalty lookups --------

	// FindConsumableSubscription devolve (nil, nil) quando o cliente não
	// tem assinatura ativa, vigente e com crédito para o plano.
	FindConsumableSubscription(ctx context.Context, barbershopID, clientID, planID uint, now time.Time) (*models.Subscription, error)

	// GetLoyalty devolve (nil, nil) quando o cliente nunca pontuou.
	GetLoyalty(ctx context.Context, barbershopID, clientID uint) (*models.Loyalty, error)

	// -------- Booking (create / mutate) --------
	CreateBooking(ctx context.Context, b *models.Booking, opts CreateOptions) error
	GetBooking(ctx context.Context, barbershopID, id uint) (*models.Booking, error)
	GetBookingByPaymentRef(ctx context.Context, barbershopID uint, ref string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, barbershopID, id uint) (*models.Booking, error)

	// -------- Sweep --------

	// CompletePastDue marca como completed todo booked/confirmed cujo
	// horário já passou. O filtro re-checa a precondição na escrita,
	// então é seguro rodar junto do tráfego normal.
	CompletePastDue(ctx context.Context, now time.Time) (int64, error)

	// -------- Listing / availability --------
	ListForPeriod(ctx context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Booking, error)
	IsWithinWorkingHours(ctx context.Context, barberID uint, start, end time.Time) (bool, error)
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)

	// -------- Loyalty accrual --------
	AccrueLoyalty(ctx context.Context, barbershopID, clientID uint, pointsPerReward int) error
	MarkClientVisit(ctx context.Context, clientID uint, now time.Time) error
}
