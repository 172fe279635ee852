package booking

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
	"github.com/navalhadigital/barber-saas/internal/payments"
)

// ======================================================
// FAKES
// ======================================================

type countingRepo struct {
	*fakeRepo
	updates int
}

func (r *countingRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.updates++
	return r.fakeRepo.UpdateBooking(ctx, b)
}

type fakeProcessor struct {
	payments_ map[string]*payments.Payment
	err       error
}

func (p *fakeProcessor) CreatePaymentLink(ctx context.Context, in payments.PaymentLinkInput) (string, error) {
	return "https://checkout.test/link", nil
}

func (p *fakeProcessor) GetPayment(ctx context.Context, id string) (*payments.Payment, error) {
	if p.err != nil {
		return nil, p.err
	}
	if pay, ok := p.payments_[id]; ok {
		return pay, nil
	}
	return nil, errors.New("payment not found upstream")
}

func (p *fakeProcessor) CreatePreapproval(ctx context.Context, in payments.PreapprovalInput) (*payments.Preapproval, error) {
	return nil, errors.New("not implemented")
}

func (p *fakeProcessor) GetPreapproval(ctx context.Context, id string) (*payments.Preapproval, error) {
	return nil, errors.New("not implemented")
}

func factoryFor(p *fakeProcessor) payments.Factory {
	return func(accessToken string) (payments.Processor, error) {
		if accessToken == "" {
			return nil, httperr.ErrBusiness("payments_not_configured")
		}
		return p, nil
	}
}

func paymentNotification(id string) *payments.Notification {
	n, _ := payments.Parse([]byte(`{"type":"payment","data":{"id":"`+id+`"}}`), url.Values{})
	return n
}

// ======================================================
// TESTS
// ======================================================

func pendingBookingRepo() (*countingRepo, *models.Booking) {
	repo := &countingRepo{fakeRepo: newFakeRepo()}
	repo.shop.MPAccessToken = "tok-123"
	repo.clients = append(repo.clients, &models.Client{ID: 40, BarbershopID: 1, Name: "João", Phone: "11999990000"})

	b := &models.Booking{
		ID:           1,
		BarbershopID: 1,
		BarberID:     2,
		ServiceID:    3,
		ClientID:     40,
		ScheduledAt:  time.Now().Add(48 * time.Hour),
		Status:       string(domain.StatusPendingPayment),
		PaymentRef:   "ref-1",
	}
	repo.bookings = append(repo.bookings, b)
	return repo, b
}

func TestWebhookApprovesPendingBooking(t *testing.T) {
	repo, b := pendingBookingRepo()
	proc := &fakeProcessor{payments_: map[string]*payments.Payment{
		"777": {ID: "777", Status: "approved", ExternalReference: "ref-1"},
	}}

	uc := NewConfirmPayment(repo, factoryFor(proc), nil, nil)

	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, esperava confirmed", b.Status)
	}
	if b.PaymentStatus != "approved" || b.PaymentID != "777" {
		t.Errorf("pagamento não foi gravado: %s/%s", b.PaymentStatus, b.PaymentID)
	}
}

func TestWebhookDuplicateDeliveryIsIdempotent(t *testing.T) {
	repo, b := pendingBookingRepo()
	proc := &fakeProcessor{payments_: map[string]*payments.Payment{
		"777": {ID: "777", Status: "approved", ExternalReference: "ref-1"},
	}}

	uc := NewConfirmPayment(repo, factoryFor(proc), nil, nil)

	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("primeira entrega falhou: %v", err)
	}
	first := repo.updates

	// Reentrega at-least-once do processador: mesmo payload, nenhum efeito.
	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("segunda entrega falhou: %v", err)
	}

	if repo.updates != first {
		t.Errorf("entrega duplicada não pode regravar: updates %d → %d", first, repo.updates)
	}
	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status mudou na reentrega: %s", b.Status)
	}
}

func TestWebhookPendingStatusDoesNotConfirm(t *testing.T) {
	repo, b := pendingBookingRepo()
	proc := &fakeProcessor{payments_: map[string]*payments.Payment{
		"777": {ID: "777", Status: "pending", ExternalReference: "ref-1"},
	}}

	uc := NewConfirmPayment(repo, factoryFor(proc), nil, nil)

	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if b.Status != string(domain.StatusPendingPayment) {
		t.Errorf("pagamento pendente não confirma: status = %s", b.Status)
	}
	if b.PaymentStatus != "pending" {
		t.Errorf("paymentStatus deveria refletir o processador: %s", b.PaymentStatus)
	}
}

func TestWebhookUnmatchedReferenceIsAcked(t *testing.T) {
	repo, _ := pendingBookingRepo()
	proc := &fakeProcessor{payments_: map[string]*payments.Payment{
		"777": {ID: "777", Status: "approved", ExternalReference: "ref-de-outro-sistema"},
	}}

	uc := NewConfirmPayment(repo, factoryFor(proc), nil, nil)

	// Reentregar não resolveria; o webhook é confirmado e descartado.
	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("referência desconhecida deveria ser confirmada: %v", err)
	}
	if repo.updates != 0 {
		t.Error("nada deveria ter sido gravado")
	}
}

func TestWebhookTransientErrorBubbles(t *testing.T) {
	repo, _ := pendingBookingRepo()
	proc := &fakeProcessor{err: errors.New("upstream timeout")}

	uc := NewConfirmPayment(repo, factoryFor(proc), nil, nil)

	// Erro transitório sobe para o handler responder não-2xx e o
	// processador reentregar.
	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err == nil {
		t.Fatal("falha transitória deveria propagar")
	}
}

func TestWebhookNonPaymentKindIsIgnored(t *testing.T) {
	repo, _ := pendingBookingRepo()
	uc := NewConfirmPayment(repo, factoryFor(&fakeProcessor{}), nil, nil)

	n, _ := payments.Parse([]byte(`{"type":"chargebacks","data":{"id":"1"}}`), url.Values{})
	if err := uc.Execute(context.Background(), 1, n); err != nil {
		t.Fatalf("outros tipos são confirmados sem efeito: %v", err)
	}
}

func TestWebhookShopWithoutCredentialsIsAcked(t *testing.T) {
	repo, _ := pendingBookingRepo()
	repo.shop.MPAccessToken = ""

	uc := NewConfirmPayment(repo, factoryFor(&fakeProcessor{}), nil, nil)

	if err := uc.Execute(context.Background(), 1, paymentNotification("777")); err != nil {
		t.Fatalf("sem credencial o webhook é descartado com 200: %v", err)
	}
}

func TestWebhookUnknownShopIsAcked(t *testing.T) {
	repo, _ := pendingBookingRepo()
	uc := NewConfirmPayment(repo, factoryFor(&fakeProcessor{}), nil, nil)

	if err := uc.Execute(context.Background(), 999, paymentNotification("777")); err != nil {
		t.Fatalf("barbearia inexistente deve ser confirmada e descartada: %v", err)
	}
	if repo.updates != 0 {
		t.Errorf("updates = %d, nada deveria ter sido gravado", repo.updates)
	}
}
