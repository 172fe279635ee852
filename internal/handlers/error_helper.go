package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navalhadigital/barber-saas/internal/httperr"
)

// writeBusinessError traduz códigos de negócio em resposta HTTP. Erros
// sem código são infraestrutura e viram 500 genérico.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch {
	case code == "time_conflict":
		httperr.Conflict(c, code, "Conflito de horário.")

	case code == "subscription_exists":
		httperr.Conflict(c, code, "Cliente já possui assinatura deste plano.")

	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, "Registro não encontrado.")

	case code == "no_active_subscription":
		httperr.Forbidden(c, code, "Serviço exclusivo para assinantes do plano.")

	case code == "payments_not_configured":
		httperr.BadRequest(c, code, "Pagamentos não configurados para esta barbearia.")

	default:
		httperr.BadRequest(c, code, "Operação inválida.")
	}
}
