package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/navalhadigital/barber-saas/internal/domain/booking"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/httpresp"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/payments"
	"github.com/navalhadigital/barber-saas/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create         *booking.CreateBooking
	updateStatus   *booking.UpdateStatus
	delete         *booking.DeleteBooking
	paymentLink    *booking.CreatePaymentLink
	confirmPayment *booking.ConfirmPayment
	availability   *booking.GetAvailability
	list           *booking.ListBookings
}

func NewBookingHandler(
	create *booking.CreateBooking,
	updateStatus *booking.UpdateStatus,
	del *booking.DeleteBooking,
	paymentLink *booking.CreatePaymentLink,
	confirmPayment *booking.ConfirmPayment,
	availability *booking.GetAvailability,
	list *booking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create:         create,
		updateStatus:   updateStatus,
		delete:         del,
		paymentLink:    paymentLink,
		confirmPayment: confirmPayment,
		availability:   availability,
		list:           list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`

	UseLoyaltyReward bool `json:"use_loyalty_reward"`
}

type AdminCreateBookingRequest struct {
	CreateBookingRequest

	Force  bool   `json:"force"`
	Status string `json:"status"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func shopIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("shopId"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_barbershop_id", "Barbearia inválida.")
		return 0, false
	}
	return uint(id), true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE (público)
// ======================================================

func (h *BookingHandler) CreatePublic(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), booking.CreateInput{
		BarbershopID:     shopID,
		BarberID:         req.BarberID,
		ServiceID:        req.ServiceID,
		ClientName:       req.ClientName,
		ClientPhone:      req.ClientPhone,
		ClientEmail:      req.ClientEmail,
		Date:             req.Date,
		Time:             req.Time,
		Notes:            req.Notes,
		UseLoyaltyReward: req.UseLoyaltyReward,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// CREATE (admin)
// ======================================================

func (h *BookingHandler) CreateAdmin(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), booking.CreateInput{
		BarbershopID:     shopID,
		BarberID:         req.BarberID,
		ServiceID:        req.ServiceID,
		ClientName:       req.ClientName,
		ClientPhone:      req.ClientPhone,
		ClientEmail:      req.ClientEmail,
		Date:             req.Date,
		Time:             req.Time,
		Notes:            req.Notes,
		UseLoyaltyReward: req.UseLoyaltyReward,
		Admin:            true,
		Force:            req.Force,
		Status:           domain.Status(req.Status),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.updateStatus.Execute(
		c.Request.Context(),
		shopID,
		userID,
		bookingID,
		domain.Status(req.Status),
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), shopID, userID, bookingID); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// PAYMENT LINK
// ======================================================

func (h *BookingHandler) CreatePayment(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}

	link, err := h.paymentLink.Execute(c.Request.Context(), shopID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"payment_url": link})
}

// ======================================================
// WEBHOOK (sem autenticação — validado pelo fetch no processador)
// ======================================================

func (h *BookingHandler) Webhook(c *gin.Context) {
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

	if err := h.confirmPayment.Execute(c.Request.Context(), shopID, n); err != nil {
		// Falha transitória: 502 faz o processador reentregar.
		httperr.BadGateway(c, "webhook_retry", "Tente novamente.")
		return
	}

	c.Status(http.StatusOK)
}

// ======================================================
// AVAILABILITY (público)
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || barberIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, barbeiro e serviço obrigatórios.")
		return
	}

	barberID, err1 := strconv.ParseUint(barberIDStr, 10, 32)
	serviceID, err2 := strconv.ParseUint(serviceIDStr, 10, 32)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_params", "Parâmetros inválidos.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), booking.AvailabilityInput{
		BarbershopID: shopID,
		BarberID:     uint(barberID),
		ServiceID:    uint(serviceID),
		Date:         date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"date": dateStr, "slots": slots})
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barberID uint
	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(id)
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}

		items, err := h.list.ByDate(c.Request.Context(), shopID, barberID, date)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.List(c, items)
		return
	}

	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_period", "Informe date ou year+month.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	items, err := h.list.ByMonth(c.Request.Context(), shopID, barberID, year, month)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, items)
}
