package subscription

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/payments"
	"github.com/navalhadigital/barber-saas/internal/validators"
)

// externalRef viaja no external_reference do preapproval e permite que o
// webhook ache a assinatura mesmo antes do preapproval_id ser gravado.
type externalRef struct {
	SubscriptionID uint `json:"subscription_id"`
}

func encodeExternalRef(subscriptionID uint) string {
	b, _ := json.Marshal(externalRef{SubscriptionID: subscriptionID})
	return string(b)
}

func decodeExternalRef(raw string) (uint, bool) {
	var ref externalRef
	if err := json.Unmarshal([]byte(raw), &ref); err != nil || ref.SubscriptionID == 0 {
		return 0, false
	}
	return ref.SubscriptionID, true
}

// ======================================================
// CREATE PREAPPROVAL (checkout de assinatura)
// ======================================================

type CreatePreapprovalInput struct {
	BarbershopID uint
	PlanID       uint

	ClientName  string
	ClientPhone string
	ClientEmail string
}

type CreatePreapprovalOutput struct {
	Subscription *models.Subscription `json:"subscription"`
	CheckoutURL  string               `json:"checkout_url"`
}

type CreatePreapproval struct {
	repo          domain.Repository
	processors    payments.Factory
	audit         *audit.Dispatcher
	publicBaseURL string
}

func NewCreatePreapproval(
	repo domain.Repository,
	processors payments.Factory,
	auditDisp *audit.Dispatcher,
	publicBaseURL string,
) *CreatePreapproval {
	return &CreatePreapproval{
		repo:          repo,
		processors:    processors,
		audit:         auditDisp,
		publicBaseURL: publicBaseURL,
	}
}

func (uc *CreatePreapproval) Execute(
	ctx context.Context,
	in CreatePreapprovalInput,
) (*CreatePreapprovalOutput, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if shop.MPAccessToken == "" {
		return nil, httperr.ErrBusiness("payments_not_configured")
	}

	plan, err := uc.repo.GetPlan(ctx, in.BarbershopID, in.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.Active {
		return nil, httperr.ErrBusiness("plan_not_found")
	}

	phone := validators.NormalizePhone(in.ClientPhone)
	if in.ClientName == "" || phone == "" || in.ClientEmail == "" {
		return nil, httperr.ErrBusiness("missing_contact")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx, in.BarbershopID, in.ClientName, phone, in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindActiveForClientPlan(
		ctx, in.BarbershopID, client.ID, plan.ID,
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("subscription_exists")
	}

	// Nasce pending, sem créditos; o primeiro webhook aprovado ativa.
	sub := &models.Subscription{
		BarbershopID: in.BarbershopID,
		ClientID:     client.ID,
		PlanID:       plan.ID,
		Status:       string(domain.StatusPending),
		AutoRenew:    true,
	}
	if err := uc.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	proc, err := uc.processors(shop.MPAccessToken)
	if err != nil {
		return nil, err
	}

	pre, err := proc.CreatePreapproval(ctx, payments.PreapprovalInput{
		Reason:            fmt.Sprintf("%s - %s", shop.Name, plan.Name),
		PayerEmail:        client.Email,
		Amount:            plan.Price,
		FrequencyDays:     plan.DurationDays,
		BackURL:           fmt.Sprintf("%s/api/barbershops/%d", uc.publicBaseURL, in.BarbershopID),
		ExternalReference: encodeExternalRef(sub.ID),
	})
	if err != nil {
		return nil, err
	}

	sub.PreapprovalID = pre.ID
	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.BarbershopID,
			Action:       "subscription_checkout_created",
			Entity:       "subscription",
			EntityID:     &sub.ID,
		})
	}

	return &CreatePreapprovalOutput{
		Subscription: sub,
		CheckoutURL:  pre.InitPoint,
	}, nil
}
