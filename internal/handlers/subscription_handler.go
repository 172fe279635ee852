package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/navalhadigital/barber-saas/internal/domain/subscription"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/httpresp"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/payments"
	"github.com/navalhadigital/barber-saas/internal/usecase/subscription"
	"github.com/navalhadigital/barber-saas/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type SubscriptionHandler struct {
	repo          domain.Repository
	checkout      *subscription.CreatePreapproval
	reconcile     *subscription.Reconcile
	cancelRenewal *subscription.CancelRenewal
	activate      *subscription.Activate
}

func NewSubscriptionHandler(
	repo domain.Repository,
	checkout *subscription.CreatePreapproval,
	reconcile *subscription.Reconcile,
	cancelRenewal *subscription.CancelRenewal,
	activate *subscription.Activate,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		repo:          repo,
		checkout:      checkout,
		reconcile:     reconcile,
		cancelRenewal: cancelRenewal,
		activate:      activate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSubscriptionRequest struct {
	PlanID      uint   `json:"plan_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
}

// ======================================================
// CHECKOUT (público)
// ======================================================

func (h *SubscriptionHandler) Create(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.checkout.Execute(c.Request.Context(), subscription.CreatePreapprovalInput{
		BarbershopID: shopID,
		PlanID:       req.PlanID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// WEBHOOK (sem autenticação)
// ======================================================

func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo inválido.")
		return
	}

	n, err := payments.Parse(body, c.Request.URL.Query())
	if err != nil {
		httperr.BadRequest(c, "invalid_notification", "Notificação inválida.")
		return
	}

	if err := h.reconcile.Execute(c.Request.Context(), shopID, n); err != nil {
		httperr.BadGateway(c, "webhook_retry", "Tente novamente.")
		return
	}

	c.Status(http.StatusOK)
}

// ======================================================
// CANCELAMENTO (público)
// ======================================================

type CancelSubscriptionRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

// CancelRenewalPublic é o autoatendimento: o assinante prova posse
// informando o telefone usado no checkout.
func (h *SubscriptionHandler) CancelRenewalPublic(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sub, err := h.repo.GetSubscription(c.Request.Context(), shopID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	client, err := h.repo.GetClient(c.Request.Context(), shopID, sub.ClientID)
	if err != nil || client.Phone != validators.NormalizePhone(req.ClientPhone) {
		// Telefone errado responde igual a assinatura inexistente.
		httperr.NotFound(c, "subscription_not_found", "Assinatura não encontrada.")
		return
	}

	out, err := h.cancelRenewal.Execute(c.Request.Context(), shopID, id, nil)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// ADMIN
// ======================================================

func (h *SubscriptionHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	subs, err := h.repo.ListForShop(c.Request.Context(), shopID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_subscriptions", "Erro ao listar assinaturas.")
		return
	}

	httpresp.List(c, subs)
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.repo.GetSubscription(c.Request.Context(), shopID, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, sub)
}

func (h *SubscriptionHandler) CancelRenewal(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.cancelRenewal.Execute(c.Request.Context(), shopID, id, &userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, sub)
}

func (h *SubscriptionHandler) Activate(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.activate.Execute(c.Request.Context(), shopID, id, &userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, sub)
}
