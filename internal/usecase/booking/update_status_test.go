package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

// seedBooking grava um agendamento direto no fake, sem passar pela criação.
func seedBooking(repo *fakeRepo, status domain.Status) *models.Booking {
	client, _ := repo.GetOrCreateClient(context.Background(), 1, "João", "11999990000", "")
	at := time.Now().AddDate(0, 0, 1)

	repo.nextID++
	b := &models.Booking{
		ID:           repo.nextID,
		BarbershopID: 1,
		BarberID:     repo.barber.ID,
		ServiceID:    repo.service.ID,
		ClientID:     client.ID,
		Status:       string(status),
		ScheduledAt:  at,
		EndTime:      at.Add(30 * time.Minute),
	}
	repo.bookings = append(repo.bookings, b)
	return b
}

func TestUpdateStatusCompletesAndAccruesLoyalty(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusConfirmed)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	out, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if out.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, esperava completed", out.Status)
	}
	if out.CompletedAt == nil {
		t.Error("completedAt deveria ser preenchido")
	}
	if repo.loyalty == nil || repo.loyalty.Points != 1 {
		t.Error("conclusão deveria pontuar fidelidade")
	}
	if len(repo.visits) != 1 || repo.visits[0] != b.ClientID {
		t.Error("conclusão deveria marcar a visita do cliente")
	}
}

func TestUpdateStatusLoyaltyRewardDoesNotAccrue(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusConfirmed)
	b.IsLoyaltyReward = true

	uc := NewUpdateStatus(repo, nil, nil, nil)

	if _, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	// Resgate de recompensa não gera ponto novo.
	if repo.loyalty != nil {
		t.Errorf("recompensa resgatada não pontua: %+v", repo.loyalty)
	}
}

func TestUpdateStatusCancelStampsTime(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusBooked)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	out, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusCanceled)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if out.CancelledAt == nil {
		t.Error("cancelledAt deveria ser preenchido")
	}
}

func TestUpdateStatusNeverReopens(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusCanceled)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusBooked)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("esperava invalid_state, veio %v", err)
	}
}

func TestUpdateStatusManualCorrection(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusCompleted)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	// Baixa dada por engano: o dono corrige para cancelado.
	out, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusCanceled)
	if err != nil {
		t.Fatalf("correção manual deveria ser aceita: %v", err)
	}
	if out.Status != string(domain.StatusCanceled) {
		t.Errorf("status = %s, esperava canceled", out.Status)
	}
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusConfirmed)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	out, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if out.Status != string(domain.StatusConfirmed) || repo.loyalty != nil {
		t.Error("mesmo status não deveria ter efeito colateral")
	}
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusBooked)

	uc := NewUpdateStatus(repo, nil, nil, nil)

	_, err := uc.Execute(context.Background(), 1, 7, b.ID, domain.Status("feito"))
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("esperava invalid_status, veio %v", err)
	}
}

func TestSweepAutoCompletesPastDue(t *testing.T) {
	repo := newFakeRepo()

	past := seedBooking(repo, domain.StatusConfirmed)
	past.ScheduledAt = time.Now().Add(-2 * time.Hour)
	past.EndTime = time.Now().Add(-90 * time.Minute)

	pending := seedBooking(repo, domain.StatusPendingPayment)
	pending.ScheduledAt = past.ScheduledAt
	pending.EndTime = past.EndTime

	future := seedBooking(repo, domain.StatusBooked)

	uc := NewSweepOverdue(repo)

	n, err := uc.Execute(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if n != 1 {
		t.Fatalf("esperava 1 baixa automática, veio %d", n)
	}
	if past.Status != string(domain.StatusCompleted) {
		t.Error("agendamento vencido deveria virar completed")
	}
	// pending_payment nunca confirma sozinho; future ainda não venceu.
	if pending.Status != string(domain.StatusPendingPayment) {
		t.Errorf("pending_payment mexido pelo sweep: %s", pending.Status)
	}
	if future.Status != string(domain.StatusBooked) {
		t.Errorf("agendamento futuro mexido pelo sweep: %s", future.Status)
	}
}
