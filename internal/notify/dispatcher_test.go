package notify

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(ctx context.Context, phone, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, phone+": "+text)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestDispatcherDelivers(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender)

	d.Dispatch("5511999990000", "mensagem de teste")

	deadline := time.Now().Add(2 * time.Second)
	for sender.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("worker não entregou a mensagem")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDispatchIgnoresEmptyPhone(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender)

	d.Dispatch("", "não deveria sair")

	time.Sleep(50 * time.Millisecond)
	if sender.count() != 0 {
		t.Error("mensagem sem telefone não pode ser enviada")
	}
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	// Notificação é opcional: chamador não checa nil.
	d.Dispatch("5511999990000", "mensagem")
}
