package booking

import (
	"time"

	"github.com/navalhadigital/barber-saas/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	next, err := Transition(Status(b.Status), EventCancel)
	if err != nil {
		return err
	}

	b.Status = string(next)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	next, err := Transition(Status(b.Status), EventComplete)
	if err != nil {
		return err
	}

	b.Status = string(next)
	b.CompletedAt = &now
	return nil
}

// ConfirmPayment aplica o resultado de um pagamento aprovado: só muda o
// status quando o agendamento aguardava pagamento obrigatório.
func ConfirmPayment(b *models.Booking) bool {
	if Status(b.Status) != StatusPendingPayment {
		return false
	}

	next, err := Transition(Status(b.Status), EventPaymentApproved)
	if err != nil {
		return false
	}

	b.Status = string(next)
	return true
}
