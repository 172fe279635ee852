package booking

import (
	"context"
	"log"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
)

// SweepOverdue é o job diário que dá baixa nos agendamentos passados:
// booked/confirmed com horário vencido viram completed ("serviço foi
// prestado"). Reconciliação de melhor esforço, não prova de presença.
type SweepOverdue struct {
	repo domain.Repository
}

func NewSweepOverdue(repo domain.Repository) *SweepOverdue {
	return &SweepOverdue{repo: repo}
}

func (uc *SweepOverdue) Execute(ctx context.Context, now time.Time) (int64, error) {
	n, err := uc.repo.CompletePastDue(ctx, now)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		log.Printf("sweep: auto-completed %d past-due bookings", n)
	}
	return n, nil
}
