package notify

import (
	"context"
	"log"
	"time"
)

type message struct {
	phone string
	text  string
}

// Dispatcher desacopla o envio da request: mensagens entram numa fila em
// memória e um worker as entrega. Falha de envio é logada, nunca
// propagada — notificação é melhor-esforço.
type Dispatcher struct {
	sender Sender
	queue  chan message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.sender.Send(ctx, m.phone, m.text); err != nil {
			log.Printf("notify: failed to send to %s: %v", m.phone, err)
		}
		cancel()
	}
}

// Dispatch enfileira sem bloquear; fila cheia descarta (nunca quebrar API).
func (d *Dispatcher) Dispatch(phone, text string) {
	if d == nil || phone == "" {
		return
	}

	select {
	case d.queue <- message{phone: phone, text: text}:
	default:
		log.Println("notify queue full, dropping message")
	}
}
