package pubsub

import (
	"sync"
	"time"
)

// MemoryBroker mantém os assinantes num map por barbearia. Publish nunca
// bloqueia: assinante lento perde eventos (o painel re-sincroniza ao
// recarregar).
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint]map[uint64]chan Event
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[uint]map[uint64]chan Event),
	}
}

func (b *MemoryBroker) Subscribe(shopID uint) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 16)
	b.nextID++
	id := b.nextID

	if b.subs[shopID] == nil {
		b.subs[shopID] = make(map[uint64]chan Event)
	}
	b.subs[shopID][id] = ch

	return &Subscription{
		ShopID: shopID,
		C:      ch,
		cancel: func() { b.remove(shopID, id) },
	}, nil
}

func (b *MemoryBroker) remove(shopID uint, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if chans, ok := b.subs[shopID]; ok {
		if ch, ok := chans[id]; ok {
			delete(chans, id)
			close(ch)
		}
		if len(chans) == 0 {
			delete(b.subs, shopID)
		}
	}
}

func (b *MemoryBroker) Publish(shopID uint, name string, payload any) {
	ev := Event{Name: name, Payload: payload, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[shopID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for shopID, chans := range b.subs {
		for id, ch := range chans {
			delete(chans, id)
			close(ch)
		}
		delete(b.subs, shopID)
	}
	return nil
}

var _ Broker = (*MemoryBroker)(nil)
