package payments

import "context"

// O core nunca busca credenciais sozinho: cada barbearia guarda o próprio
// access token e os handlers o injetam via Factory. Isso mantém os
// usecases testáveis sem banco e sem SDK.

type LinkItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
}

type PaymentLinkInput struct {
	Items []LinkItem

	PayerName  string
	PayerEmail string

	SuccessURL string
	PendingURL string
	FailureURL string

	NotificationURL   string
	ExternalReference string
}

type Payment struct {
	ID                string
	Status            string
	ExternalReference string
}

type PreapprovalInput struct {
	Reason            string
	PayerEmail        string
	Amount            float64
	FrequencyDays     int
	BackURL           string
	ExternalReference string
}

type Preapproval struct {
	ID                string
	Status            string
	ExternalReference string
	InitPoint         string
}

type Processor interface {
	CreatePaymentLink(ctx context.Context, in PaymentLinkInput) (string, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)

	CreatePreapproval(ctx context.Context, in PreapprovalInput) (*Preapproval, error)
	GetPreapproval(ctx context.Context, id string) (*Preapproval, error)
}

// Factory constrói um Processor com a credencial da barbearia.
type Factory func(accessToken string) (Processor, error)
