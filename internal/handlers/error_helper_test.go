package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/navalhadigital/barber-saas/internal/httperr"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeBusinessError(c, err)
	return w.Code
}

func TestWriteBusinessErrorStatusByCode(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"time_conflict", http.StatusConflict},
		{"subscription_exists", http.StatusConflict},
		{"booking_not_found", http.StatusNotFound},
		{"barbershop_not_found", http.StatusNotFound},
		{"no_active_subscription", http.StatusForbidden},
		{"payments_not_configured", http.StatusBadRequest},
		{"no_credits", http.StatusBadRequest},
		{"invalid_state", http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := statusFor(t, httperr.ErrBusiness(tc.code)); got != tc.want {
			t.Errorf("%s: status = %d, esperava %d", tc.code, got, tc.want)
		}
	}
}

func TestWriteBusinessErrorInfraIs500(t *testing.T) {
	if got := statusFor(t, errors.New("connection refused")); got != http.StatusInternalServerError {
		t.Errorf("erro sem código deveria virar 500, veio %d", got)
	}
}
