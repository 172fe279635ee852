package pubsub

import "time"

// Event é o que o painel da barbearia recebe em tempo real: agendamento
// criado, pagamento aprovado, assinatura renovada etc.
type Event struct {
	Name    string    `json:"name"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Subscription é a ponta de leitura de um assinante. Cancel é idempotente.
type Subscription struct {
	ShopID uint
	C      <-chan Event

	cancel func()
}

func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Broker publica eventos por barbearia. A implementação em memória serve
// uma instância única; a Redis serve múltiplas réplicas atrás de um
// balanceador.
type Broker interface {
	Subscribe(shopID uint) (*Subscription, error)
	Publish(shopID uint, name string, payload any)
	Close() error
}
