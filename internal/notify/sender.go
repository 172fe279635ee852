package notify

import "context"

// Sender entrega uma mensagem de texto a um telefone. A implementação
// real fala com o gateway de WhatsApp; testes usam um fake.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}
