package booking

// Valores de Booking.PaymentStatus. Os três primeiros vêm do Mercado
// Pago; os demais são internos.
const (
	PaymentApproved = "approved"
	PaymentPending  = "pending"
	PaymentRejected = "rejected"

	PaymentLoyaltyReward = "loyalty_reward"
	PaymentPlanCredit    = "plan_credit"
	PaymentNone          = "no-payment"
)
