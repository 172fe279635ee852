package subscription

import (
	"time"

	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

// ===============================
// Subscription Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusCanceled Status = "canceled"
)

// ===============================
// Domain Actions
// ===============================

// Activate liga uma assinatura pendente a partir de agora: período e
// créditos vêm do plano. Usada tanto pelo webhook (primeiro pagamento)
// quanto pela ativação manual do admin.
func Activate(s *models.Subscription, plan *models.Plan, now time.Time) error {
	if Status(s.Status) != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}

	applyPeriod(s, plan, now)
	s.Status = string(StatusActive)
	return nil
}

// Renew aplica um pagamento recorrente: zera créditos para o total do
// plano e estende a vigência a partir de agora (não do fim anterior).
func Renew(s *models.Subscription, plan *models.Plan, now time.Time) error {
	switch Status(s.Status) {
	case StatusActive, StatusExpired:
		applyPeriod(s, plan, now)
		s.Status = string(StatusActive)
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// CancelRenewal desliga a renovação automática. Status e créditos ficam
// intactos: o assinante usa o que pagou até endDate.
func CancelRenewal(s *models.Subscription) {
	s.AutoRenew = false
}

func applyPeriod(s *models.Subscription, plan *models.Plan, now time.Time) {
	end := now.AddDate(0, 0, plan.DurationDays)

	s.StartDate = &now
	s.EndDate = &end
	s.CreditsRemaining = plan.TotalCredits
	s.LastPaymentDate = &now
	s.NextPaymentDate = &end
}

// IsConsumable diz se a assinatura pode ceder um crédito agora. A mesma
// condição é re-checada pelo UPDATE condicional no momento do débito.
func IsConsumable(s *models.Subscription, now time.Time) bool {
	if Status(s.Status) != StatusActive || s.CreditsRemaining <= 0 {
		return false
	}
	return s.EndDate != nil && !s.EndDate.Before(now)
}

// RenewalDue evita aplicar duas vezes a mesma renovação: notificações
// duplicadas do processador chegam antes de nextPaymentDate vencer.
func RenewalDue(s *models.Subscription, now time.Time) bool {
	if Status(s.Status) == StatusExpired {
		return true
	}
	return s.NextPaymentDate == nil || !now.Before(*s.NextPaymentDate)
}
