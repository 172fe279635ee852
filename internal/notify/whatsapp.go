package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppGateway envia mensagens por um gateway HTTP externo
// (Evolution API e afins): POST /message com token no header.
type WhatsAppGateway struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewWhatsAppGateway(baseURL, token string) *WhatsAppGateway {
	return &WhatsAppGateway{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			// Nunca retemos a request da API esperando o gateway.
			Timeout: 10 * time.Second,
		},
	}
}

type whatsAppMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (g *WhatsAppGateway) Send(ctx context.Context, phone, text string) error {
	body, err := json.Marshal(whatsAppMessage{Phone: phone, Message: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/message",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned %d", resp.StatusCode)
	}

	return nil
}

var _ Sender = (*WhatsAppGateway)(nil)
