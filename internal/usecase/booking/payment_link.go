package booking

import (
	"context"
	"fmt"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/payments"
)

type CreatePaymentLink struct {
	repo       domain.Repository
	processors payments.Factory

	// Base pública da API, usada para montar a notification_url que o
	// processador chamará de volta.
	publicBaseURL string
}

func NewCreatePaymentLink(
	repo domain.Repository,
	processors payments.Factory,
	publicBaseURL string,
) *CreatePaymentLink {
	return &CreatePaymentLink{
		repo:          repo,
		processors:    processors,
		publicBaseURL: publicBaseURL,
	}
}

// Execute gera o link de checkout de um agendamento avulso. Erros do
// processador sobem com detalhe — criação de link é síncrona e o
// cliente precisa saber que falhou.
func (uc *CreatePaymentLink) Execute(
	ctx context.Context,
	barbershopID uint,
	bookingID uint,
) (string, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return "", err
	}
	if shop.MPAccessToken == "" {
		return "", httperr.ErrBusiness("payments_not_configured")
	}

	b, err := uc.repo.GetBooking(ctx, barbershopID, bookingID)
	if err != nil {
		return "", err
	}

	if domain.IsTerminal(domain.Status(b.Status)) {
		return "", httperr.ErrBusiness("invalid_state")
	}
	if b.PaymentStatus == domain.PaymentApproved {
		return "", httperr.ErrBusiness("already_paid")
	}

	svc, err := uc.repo.GetService(ctx, barbershopID, b.ServiceID)
	if err != nil {
		return "", err
	}

	client, err := uc.repo.GetClient(ctx, barbershopID, b.ClientID)
	if err != nil {
		return "", err
	}

	proc, err := uc.processors(shop.MPAccessToken)
	if err != nil {
		return "", err
	}

	notificationURL := fmt.Sprintf(
		"%s/api/barbershops/%d/bookings/webhook",
		uc.publicBaseURL, barbershopID,
	)
	returnURL := fmt.Sprintf("%s/api/barbershops/%d/bookings/%d", uc.publicBaseURL, barbershopID, b.ID)

	return proc.CreatePaymentLink(ctx, payments.PaymentLinkInput{
		Items: []payments.LinkItem{{
			Title:     svc.Name,
			Quantity:  1,
			UnitPrice: svc.Price,
		}},
		PayerName:         client.Name,
		PayerEmail:        client.Email,
		SuccessURL:        returnURL,
		PendingURL:        returnURL,
		FailureURL:        returnURL,
		NotificationURL:   notificationURL,
		ExternalReference: b.PaymentRef,
	})
}
