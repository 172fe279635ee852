package pubsub

import (
	"testing"
	"time"
)

func TestMemoryBrokerDeliversToShopSubscribers(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	sub1, err := b.Subscribe(1)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	sub2, err := b.Subscribe(2)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	b.Publish(1, "booking.created", map[string]any{"id": 7})

	select {
	case ev := <-sub1.C:
		if ev.Name != "booking.created" {
			t.Errorf("evento = %s, esperava booking.created", ev.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("assinante da barbearia 1 não recebeu o evento")
	}

	select {
	case ev := <-sub2.C:
		t.Errorf("barbearia 2 não deveria receber eventos da 1: %v", ev)
	default:
	}
}

func TestMemoryBrokerCancelClosesChannel(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	sub, _ := b.Subscribe(1)
	sub.Cancel()
	sub.Cancel() // idempotente

	if _, open := <-sub.C; open {
		t.Error("canal deveria estar fechado após Cancel")
	}

	// Publicar depois do cancel não pode travar nem entregar.
	b.Publish(1, "booking.created", nil)
}

func TestMemoryBrokerSlowSubscriberNeverBlocks(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	sub, _ := b.Subscribe(1)

	// Estoura o buffer sem ninguém lendo; Publish deve voltar sempre.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(1, "booking.created", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish bloqueou com assinante lento")
	}

	// O que coube no buffer continua legível.
	select {
	case <-sub.C:
	default:
		t.Error("buffer deveria ter retido eventos")
	}
}

func TestMemoryBrokerCloseIsIdempotent(t *testing.T) {
	b := NewMemoryBroker()

	sub, _ := b.Subscribe(1)

	if err := b.Close(); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("segundo Close deveria ser aceito: %v", err)
	}

	if _, open := <-sub.C; open {
		t.Error("Close deveria fechar os canais dos assinantes")
	}
}
