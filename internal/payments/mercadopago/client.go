package mercadopago

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/payments"
)

// Client adapta o SDK oficial do Mercado Pago à interface
// payments.Processor. Uma instância por barbearia, com o token dela.
type Client struct {
	preference  preference.Client
	payment     payment.Client
	preapproval preapproval.Client
}

func New(accessToken string) (payments.Processor, error) {
	if accessToken == "" {
		return nil, httperr.ErrBusiness("payments_not_configured")
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		preference:  preference.NewClient(cfg),
		payment:     payment.NewClient(cfg),
		preapproval: preapproval.NewClient(cfg),
	}, nil
}

func (c *Client) CreatePaymentLink(ctx context.Context, in payments.PaymentLinkInput) (string, error) {
	items := make([]preference.ItemRequest, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, preference.ItemRequest{
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	req := preference.Request{
		Items:             items,
		ExternalReference: in.ExternalReference,
		NotificationURL:   in.NotificationURL,
		BackURLs: &preference.BackURLsRequest{
			Success: in.SuccessURL,
			Pending: in.PendingURL,
			Failure: in.FailureURL,
		},
		AutoReturn: "approved",
	}

	if in.PayerEmail != "" || in.PayerName != "" {
		req.Payer = &preference.PayerRequest{
			Name:  in.PayerName,
			Email: in.PayerEmail,
		}
	}

	resp, err := c.preference.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.InitPoint, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*payments.Payment, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_payment_id")
	}

	resp, err := c.payment.Get(ctx, numericID)
	if err != nil {
		return nil, err
	}

	return &payments.Payment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}, nil
}

func (c *Client) CreatePreapproval(ctx context.Context, in payments.PreapprovalInput) (*payments.Preapproval, error) {
	resp, err := c.preapproval.Create(ctx, preapproval.Request{
		Reason:            in.Reason,
		PayerEmail:        in.PayerEmail,
		ExternalReference: in.ExternalReference,
		BackURL:           in.BackURL,
		AutoRecurring: &preapproval.AutoRecurringRequest{
			Frequency:         in.FrequencyDays,
			FrequencyType:     "days",
			TransactionAmount: in.Amount,
			CurrencyID:        "BRL",
		},
	})
	if err != nil {
		return nil, err
	}

	return &payments.Preapproval{
		ID:                resp.ID,
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		InitPoint:         resp.InitPoint,
	}, nil
}

func (c *Client) GetPreapproval(ctx context.Context, id string) (*payments.Preapproval, error) {
	resp, err := c.preapproval.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &payments.Preapproval{
		ID:                resp.ID,
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		InitPoint:         resp.InitPoint,
	}, nil
}

var _ payments.Processor = (*Client)(nil)

// Factory é a payments.Factory padrão usada pelas rotas.
func Factory(accessToken string) (payments.Processor, error) {
	return New(accessToken)
}
