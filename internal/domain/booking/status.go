package booking

import "github.com/navalhadigital/barber-saas/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked         Status = "booked"
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCanceled       Status = "canceled"
)

// Eventos que movem um agendamento de estado. Todos os chamadores
// (criação, webhook, admin, sweep) passam por Transition — nenhum
// handler escreve status por conta própria.
type Event string

const (
	EventConfirm         Event = "confirm"
	EventPaymentApproved Event = "payment_approved"
	EventComplete        Event = "complete"
	EventCancel          Event = "cancel"
)

var transitions = map[Status]map[Event]Status{
	StatusBooked: {
		EventConfirm:  StatusConfirmed,
		EventComplete: StatusCompleted,
		EventCancel:   StatusCanceled,
	},
	StatusPendingPayment: {
		EventPaymentApproved: StatusConfirmed,
		EventConfirm:         StatusConfirmed,
		EventCancel:          StatusCanceled,
	},
	StatusConfirmed: {
		EventComplete: StatusCompleted,
		EventCancel:   StatusCanceled,
	},
}

// Transition devolve o próximo estado ou invalid_state quando o evento
// não é legal a partir do estado atual. Completed e canceled são
// terminais aqui; só o override administrativo (AdminSet) cruza entre eles.
func Transition(current Status, ev Event) (Status, error) {
	if next, ok := transitions[current][ev]; ok {
		return next, nil
	}
	return current, httperr.ErrBusiness("invalid_state")
}

// CanTransition informa se o evento é legal sem aplicá-lo.
func CanTransition(current Status, ev Event) bool {
	_, ok := transitions[current][ev]
	return ok
}

// AdminSet valida a troca direta de status feita pelo dono da barbearia.
// Além das transições normais, permite completed↔canceled (correção
// manual de registro); nunca reabre para booked.
func AdminSet(current, target Status) error {
	if current == target {
		return nil
	}

	if (current == StatusCompleted && target == StatusCanceled) ||
		(current == StatusCanceled && target == StatusCompleted) {
		return nil
	}

	for _, next := range transitions[current] {
		if next == target {
			return nil
		}
	}

	return httperr.ErrBusiness("invalid_state")
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusBooked, StatusPendingPayment, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
