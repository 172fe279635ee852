package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/middleware"
	"github.com/navalhadigital/barber-saas/internal/pubsub"
)

// EventsHandler transmite os eventos da barbearia por SSE para o painel:
//
//	data: {"name":"booking.created","payload":{...},"at":"..."}
type EventsHandler struct {
	broker pubsub.Broker
}

func NewEventsHandler(broker pubsub.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	if h.broker == nil {
		httperr.Internal(c, "events_not_configured", "Eventos indisponíveis.")
		return
	}

	sub, err := h.broker.Subscribe(shopID)
	if err != nil {
		httperr.Internal(c, "subscribe_failed", "Erro ao assinar eventos.")
		return
	}
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	flusher.Flush()

	done := c.Request.Context().Done()

	for {
		select {
		case <-done:
			return

		case ev, open := <-sub.C:
			if !open {
				return
			}

			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}

			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(payload)
			_, _ = c.Writer.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
