package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	shop    *models.Barbershop
	barber  *models.User
	service *models.Service
	hours   *models.WorkingHours

	clients  []*models.Client
	bookings []*models.Booking
	sub      *models.Subscription
	loyalty  *models.Loyalty

	visits []uint
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Barbershop{
			ID:                     1,
			Name:                   "Navalha Digital",
			Timezone:               "America/Sao_Paulo",
			MinAdvanceMinutes:      120,
			LoyaltyPointsPerReward: 10,
		},
		barber:  &models.User{ID: 2, BarbershopID: 1, Name: "Breno"},
		service: &models.Service{ID: 3, BarbershopID: 1, Name: "Corte", DurationMin: 30, Price: 50},
		hours:   &models.WorkingHours{BarberID: 2, Active: true, StartTime: "09:00", EndTime: "19:00"},
	}
}

func (r *fakeRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	if r.shop == nil || r.shop.ID != id {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}
	return r.shop, nil
}

func (r *fakeRepo) GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error) {
	if r.barber == nil || r.barber.ID != barberID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	return r.barber, nil
}

func (r *fakeRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	if r.service == nil || r.service.ID != serviceID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return r.service, nil
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	r.nextID++
	c := &models.Client{ID: 100 + r.nextID, BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *fakeRepo) GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error) {
	for _, c := range r.clients {
		if c.ID == clientID {
			return c, nil
		}
	}
	return nil, httperr.ErrBusiness("client_not_found")
}

func (r *fakeRepo) FindConsumableSubscription(ctx context.Context, barbershopID, clientID, planID uint, now time.Time) (*models.Subscription, error) {
	if r.sub == nil || r.sub.PlanID != planID {
		return nil, nil
	}
	if r.sub.Status != "active" || r.sub.CreditsRemaining <= 0 {
		return nil, nil
	}
	return r.sub, nil
}

func (r *fakeRepo) GetLoyalty(ctx context.Context, barbershopID, clientID uint) (*models.Loyalty, error) {
	return r.loyalty, nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking, opts domain.CreateOptions) error {
	if !opts.Force {
		for _, existing := range r.bookings {
			if existing.BarberID == b.BarberID &&
				existing.ScheduledAt.Equal(b.ScheduledAt) &&
				existing.Status != string(domain.StatusCanceled) {
				return httperr.ErrBusiness("time_conflict")
			}
		}
	}

	if opts.ConsumeSubscriptionID != nil {
		if r.sub == nil || r.sub.ID != *opts.ConsumeSubscriptionID || r.sub.CreditsRemaining <= 0 {
			return httperr.ErrBusiness("no_credits")
		}
		r.sub.CreditsRemaining--
	}

	if opts.RedeemLoyalty {
		if r.loyalty == nil || r.loyalty.Rewards <= 0 {
			return httperr.ErrBusiness("no_rewards")
		}
		r.loyalty.Rewards--
	}

	r.nextID++
	b.ID = r.nextID
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetBooking(ctx context.Context, barbershopID, id uint) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) GetBookingByPaymentRef(ctx context.Context, barbershopID uint, ref string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.PaymentRef == ref {
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	for i, existing := range r.bookings {
		if existing.ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	return httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) DeleteBooking(ctx context.Context, barbershopID, id uint) (*models.Booking, error) {
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) CompletePastDue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		s := domain.Status(b.Status)
		if (s == domain.StatusBooked || s == domain.StatusConfirmed) && b.EndTime.Before(now) {
			b.Status = string(domain.StatusCompleted)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ListForPeriod(ctx context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if !b.ScheduledAt.Before(start) && b.ScheduledAt.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsWithinWorkingHours(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	return r.hours != nil && r.hours.Active, nil
}

func (r *fakeRepo) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	if r.hours == nil {
		return nil, httperr.ErrBusiness("working_hours_not_found")
	}
	return r.hours, nil
}

func (r *fakeRepo) AccrueLoyalty(ctx context.Context, barbershopID, clientID uint, pointsPerReward int) error {
	if r.loyalty == nil {
		r.loyalty = &models.Loyalty{BarbershopID: barbershopID, ClientID: clientID}
	}
	r.loyalty.Points++
	if r.loyalty.Points >= pointsPerReward {
		r.loyalty.Points = 0
		r.loyalty.Rewards++
	}
	return nil
}

func (r *fakeRepo) MarkClientVisit(ctx context.Context, clientID uint, now time.Time) error {
	r.visits = append(r.visits, clientID)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

// futureSlot devolve data e hora dentro do expediente, longe o bastante
// para passar na antecedência mínima.
func futureSlot(daysAhead int) (string, string) {
	d := time.Now().AddDate(0, 0, daysAhead)
	return d.Format("2006-01-02"), "10:00"
}

func publicInput(repo *fakeRepo, daysAhead int) CreateInput {
	date, hour := futureSlot(daysAhead)
	return CreateInput{
		BarbershopID: repo.shop.ID,
		BarberID:     repo.barber.ID,
		ServiceID:    repo.service.ID,
		ClientName:   "João",
		ClientPhone:  "(11) 99999-0000",
		Date:         date,
		Time:         hour,
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCreatePublicBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	b, err := uc.Execute(context.Background(), publicInput(repo, 2))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if b.Status != string(domain.StatusBooked) {
		t.Errorf("status = %s, esperava booked", b.Status)
	}
	if b.PaymentRef == "" {
		t.Error("paymentRef deveria ser gerado na criação")
	}
	if b.EndTime.Sub(b.ScheduledAt) != 30*time.Minute {
		t.Errorf("duração = %v, esperava 30m", b.EndTime.Sub(b.ScheduledAt))
	}
	if len(repo.clients) != 1 {
		t.Errorf("cliente deveria ter sido criado por telefone")
	}
}

func TestCreateRejectsConflictWithoutForce(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("primeiro agendamento falhou: %v", err)
	}

	in.ClientPhone = "(11) 98888-7777"
	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("esperava time_conflict, veio %v", err)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("conflito não pode gravar segundo agendamento")
	}
}

func TestAdminForceOverbooksSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("primeiro agendamento falhou: %v", err)
	}

	forced := in
	forced.ClientPhone = "(11) 98888-7777"
	forced.Admin = true
	forced.Force = true

	if _, err := uc.Execute(context.Background(), forced); err != nil {
		t.Fatalf("force deveria criar mesmo com conflito: %v", err)
	}
	if len(repo.bookings) != 2 {
		t.Errorf("esperava 2 agendamentos no mesmo horário, veio %d", len(repo.bookings))
	}
}

func TestCreateRejectsTooSoon(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.Date = time.Now().Format("2006-01-02")
	in.Time = time.Now().Add(10 * time.Minute).Format("15:04")

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("esperava too_soon, veio %v", err)
	}
}

func TestAdminSkipsAdvanceAndWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.hours.Active = false // fora do expediente
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 0)
	in.Time = "23:00"
	in.Admin = true

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("caminho admin não valida antecedência nem expediente: %v", err)
	}
}

func TestCreateRequiresContact(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.ClientPhone = "abc" // sem dígitos suficientes

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "missing_contact") {
		t.Fatalf("esperava missing_contact, veio %v", err)
	}
}

func TestPrepaymentShopStartsPendingPayment(t *testing.T) {
	repo := newFakeRepo()
	repo.shop.RequirePrepayment = true
	uc := NewCreateBooking(repo, nil, nil, nil)

	b, err := uc.Execute(context.Background(), publicInput(repo, 2))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if b.Status != string(domain.StatusPendingPayment) {
		t.Errorf("status = %s, esperava pending_payment", b.Status)
	}
}

func TestPlanServiceConsumesCredit(t *testing.T) {
	repo := newFakeRepo()
	planID := uint(9)
	repo.service.IsPlanService = true
	repo.service.PlanID = &planID
	end := time.Now().AddDate(0, 0, 20)
	repo.sub = &models.Subscription{
		ID: 50, BarbershopID: 1, PlanID: planID,
		Status: "active", CreditsRemaining: 2, EndDate: &end,
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	b, err := uc.Execute(context.Background(), publicInput(repo, 2))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, esperava confirmed (crédito pago)", b.Status)
	}
	if b.PaymentStatus != domain.PaymentPlanCredit {
		t.Errorf("paymentStatus = %s, esperava plan_credit", b.PaymentStatus)
	}
	if b.SubscriptionID == nil || *b.SubscriptionID != 50 {
		t.Error("agendamento deveria referenciar a assinatura consumida")
	}
	if repo.sub.CreditsRemaining != 1 {
		t.Errorf("crédito não foi debitado: %d", repo.sub.CreditsRemaining)
	}
}

func TestPlanServiceExhaustsCredits(t *testing.T) {
	repo := newFakeRepo()
	planID := uint(9)
	repo.service.IsPlanService = true
	repo.service.PlanID = &planID
	end := time.Now().AddDate(0, 0, 20)
	repo.sub = &models.Subscription{
		ID: 50, BarbershopID: 1, PlanID: planID,
		Status: "active", CreditsRemaining: 1, EndDate: &end,
	}

	uc := NewCreateBooking(repo, nil, nil, nil)

	if _, err := uc.Execute(context.Background(), publicInput(repo, 2)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if repo.sub.CreditsRemaining != 0 {
		t.Fatalf("crédito não foi debitado: %d", repo.sub.CreditsRemaining)
	}

	// Sem créditos o próximo agendamento do plano é recusado...
	in := publicInput(repo, 3)
	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "no_active_subscription") {
		t.Fatalf("esperava no_active_subscription, veio %v", err)
	}

	// ...a menos que o admin force, e aí fica sem cobrança.
	in.Admin = true
	in.Force = true
	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("force deveria criar: %v", err)
	}
	if b.PaymentStatus != domain.PaymentNone || repo.sub.CreditsRemaining != 0 {
		t.Errorf("force não pode debitar: %s/%d", b.PaymentStatus, repo.sub.CreditsRemaining)
	}
}

func TestPlanServiceWithoutSubscription(t *testing.T) {
	repo := newFakeRepo()
	planID := uint(9)
	repo.service.IsPlanService = true
	repo.service.PlanID = &planID

	uc := NewCreateBooking(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), publicInput(repo, 2))
	if !httperr.IsBusiness(err, "no_active_subscription") {
		t.Fatalf("esperava no_active_subscription, veio %v", err)
	}
}

func TestPlanServiceAdminForceBypassesSubscription(t *testing.T) {
	repo := newFakeRepo()
	planID := uint(9)
	repo.service.IsPlanService = true
	repo.service.PlanID = &planID

	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.Admin = true
	in.Force = true

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("force deveria criar sem assinatura: %v", err)
	}
	if b.PaymentStatus != domain.PaymentNone {
		t.Errorf("paymentStatus = %s, esperava no-payment", b.PaymentStatus)
	}
	if b.SubscriptionID != nil {
		t.Error("sem assinatura não há referência para gravar")
	}
}

func TestLoyaltyRewardRedemption(t *testing.T) {
	repo := newFakeRepo()
	repo.loyalty = &models.Loyalty{BarbershopID: 1, Rewards: 1}

	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.UseLoyaltyReward = true

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !b.IsLoyaltyReward {
		t.Error("agendamento deveria estar marcado como recompensa")
	}
	if b.PaymentStatus != domain.PaymentLoyaltyReward {
		t.Errorf("paymentStatus = %s, esperava loyalty_reward", b.PaymentStatus)
	}
	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, esperava confirmed", b.Status)
	}
	if repo.loyalty.Rewards != 0 {
		t.Errorf("recompensa não foi debitada: %d", repo.loyalty.Rewards)
	}
}

func TestLoyaltyWithoutRewards(t *testing.T) {
	repo := newFakeRepo()
	repo.loyalty = &models.Loyalty{BarbershopID: 1, Rewards: 0}

	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.UseLoyaltyReward = true

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "no_rewards") {
		t.Fatalf("esperava no_rewards, veio %v", err)
	}
}

func TestAdminExplicitStatusWins(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.Admin = true
	in.Status = domain.StatusCompleted

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if b.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, esperava completed", b.Status)
	}
	if b.CompletedAt == nil {
		t.Error("completedAt deveria ser preenchido")
	}
}

func TestAdminRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	in.Admin = true
	in.Status = domain.Status("agendadíssimo")

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("esperava invalid_status, veio %v", err)
	}
}

func TestClientUpsertByPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	in := publicInput(repo, 2)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// Mesmo telefone em formato diferente → mesmo cliente.
	in2 := publicInput(repo, 3)
	in2.ClientPhone = "11999990000"
	if _, err := uc.Execute(context.Background(), in2); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(repo.clients) != 1 {
		t.Errorf("esperava 1 cliente, veio %d", len(repo.clients))
	}
}

func TestPaymentRefsAreUnique(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil)

	refs := map[string]bool{}
	for i := 2; i < 6; i++ {
		in := publicInput(repo, i)
		in.ClientPhone = fmt.Sprintf("(11) 9999%d-0000", i)
		b, err := uc.Execute(context.Background(), in)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if refs[b.PaymentRef] {
			t.Fatalf("paymentRef repetido: %s", b.PaymentRef)
		}
		refs[b.PaymentRef] = true
	}
}
