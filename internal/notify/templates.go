package notify

import (
	"fmt"
	"time"
)

// Mensagens em pt-BR enviadas ao cliente. O horário já chega no fuso da
// barbearia.

func BookingReceived(shopName, serviceName string, at time.Time) string {
	return fmt.Sprintf(
		"Olá! Recebemos seu agendamento de %s na %s para %s às %s. Até lá!",
		serviceName, shopName, at.Format("02/01/2006"), at.Format("15:04"),
	)
}

func BookingConfirmed(shopName, serviceName string, at time.Time) string {
	return fmt.Sprintf(
		"Pagamento aprovado! Seu horário de %s na %s está confirmado para %s às %s.",
		serviceName, shopName, at.Format("02/01/2006"), at.Format("15:04"),
	)
}

func BookingCanceled(shopName string, at time.Time) string {
	return fmt.Sprintf(
		"Seu agendamento na %s em %s às %s foi cancelado. Qualquer dúvida, fale com a gente.",
		shopName, at.Format("02/01/2006"), at.Format("15:04"),
	)
}

func ReturnReminder(shopName, clientName string) string {
	return fmt.Sprintf(
		"Oi %s! Já faz um tempo desde sua última visita à %s. Que tal agendar um horário?",
		clientName, shopName,
	)
}
