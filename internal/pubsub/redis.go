package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBroker publica os eventos num canal Redis por barbearia, para que
// qualquer réplica da API veja eventos gerados pelas outras.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(addr, password string) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	return &RedisBroker{client: client}, nil
}

func channelFor(shopID uint) string {
	return fmt.Sprintf("shop.%d.events", shopID)
}

func (b *RedisBroker) Subscribe(shopID uint) (*Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ps := b.client.Subscribe(ctx, channelFor(shopID))

	// Confirma a inscrição antes de entregar o canal ao chamador.
	if _, err := ps.Receive(ctx); err != nil {
		cancel()
		return nil, err
	}

	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("pubsub: bad event payload: %v", err)
				continue
			}
			select {
			case out <- ev:
			default:
			}
		}
	}()

	return &Subscription{
		ShopID: shopID,
		C:      out,
		cancel: func() {
			_ = ps.Close()
			cancel()
		},
	}, nil
}

func (b *RedisBroker) Publish(shopID uint, name string, payload any) {
	ev := Event{Name: name, Payload: payload, At: time.Now()}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("pubsub: marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.client.Publish(ctx, channelFor(shopID), data).Err(); err != nil {
		log.Printf("pubsub: publish: %v", err)
	}
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

var _ Broker = (*RedisBroker)(nil)
