package booking

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from Status
		ev   Event
		to   Status
		ok   bool
	}{
		{StatusBooked, EventConfirm, StatusConfirmed, true},
		{StatusBooked, EventComplete, StatusCompleted, true},
		{StatusBooked, EventCancel, StatusCanceled, true},
		{StatusBooked, EventPaymentApproved, StatusBooked, false},

		{StatusPendingPayment, EventPaymentApproved, StatusConfirmed, true},
		{StatusPendingPayment, EventConfirm, StatusConfirmed, true},
		{StatusPendingPayment, EventCancel, StatusCanceled, true},
		{StatusPendingPayment, EventComplete, StatusPendingPayment, false},

		{StatusConfirmed, EventComplete, StatusCompleted, true},
		{StatusConfirmed, EventCancel, StatusCanceled, true},
		{StatusConfirmed, EventConfirm, StatusConfirmed, false},

		{StatusCompleted, EventCancel, StatusCompleted, false},
		{StatusCompleted, EventConfirm, StatusCompleted, false},
		{StatusCanceled, EventConfirm, StatusCanceled, false},
		{StatusCanceled, EventComplete, StatusCanceled, false},
	}

	for _, c := range cases {
		got, err := Transition(c.from, c.ev)
		if c.ok {
			if err != nil {
				t.Errorf("%s + %s: erro inesperado %v", c.from, c.ev, err)
			}
			if got != c.to {
				t.Errorf("%s + %s: esperava %s, veio %s", c.from, c.ev, c.to, got)
			}
		} else {
			if err == nil {
				t.Errorf("%s + %s: deveria falhar", c.from, c.ev)
			}
			if got != c.from {
				t.Errorf("%s + %s: transição inválida não pode mudar o estado", c.from, c.ev)
			}
		}

		if CanTransition(c.from, c.ev) != c.ok {
			t.Errorf("CanTransition(%s, %s) inconsistente com Transition", c.from, c.ev)
		}
	}
}

func TestAdminSetAllowsManualCorrection(t *testing.T) {
	if err := AdminSet(StatusCompleted, StatusCanceled); err != nil {
		t.Errorf("completed → canceled deveria ser permitido: %v", err)
	}
	if err := AdminSet(StatusCanceled, StatusCompleted); err != nil {
		t.Errorf("canceled → completed deveria ser permitido: %v", err)
	}
}

func TestAdminSetNeverReopens(t *testing.T) {
	if err := AdminSet(StatusCompleted, StatusBooked); err == nil {
		t.Error("completed → booked deveria falhar")
	}
	if err := AdminSet(StatusCanceled, StatusBooked); err == nil {
		t.Error("canceled → booked deveria falhar")
	}
	if err := AdminSet(StatusConfirmed, StatusBooked); err == nil {
		t.Error("confirmed → booked deveria falhar")
	}
}

func TestAdminSetSameStatusIsNoop(t *testing.T) {
	if err := AdminSet(StatusBooked, StatusBooked); err != nil {
		t.Errorf("status igual deveria ser aceito: %v", err)
	}
}

func TestAdminSetFollowsNormalTransitions(t *testing.T) {
	if err := AdminSet(StatusBooked, StatusConfirmed); err != nil {
		t.Errorf("booked → confirmed deveria ser permitido: %v", err)
	}
	if err := AdminSet(StatusPendingPayment, StatusConfirmed); err != nil {
		t.Errorf("pending_payment → confirmed deveria ser permitido: %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCanceled} {
		if !IsTerminal(s) {
			t.Errorf("%s deveria ser terminal", s)
		}
	}
	for _, s := range []Status{StatusBooked, StatusPendingPayment, StatusConfirmed} {
		if IsTerminal(s) {
			t.Errorf("%s não deveria ser terminal", s)
		}
	}
}
