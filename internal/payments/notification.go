package payments

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Notification é o corpo de um webhook do Mercado Pago. O formato mudou
// ao longo dos anos e os dois convivem:
//
//	novo:    {"type":"payment","data":{"id":"123"}}
//	legado:  {"topic":"payment","resource":"https://.../payments/123"}
//
// Alguns envios chegam só com query string (?topic=payment&id=123).
type Notification struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Topic    string `json:"topic"`
	Action   string `json:"action"`
	Resource string `json:"resource"`

	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Parse nunca falha em corpo vazio: webhooks de teste do processador
// chegam sem payload e precisam ser aceitos.
func Parse(body []byte, query url.Values) (*Notification, error) {
	var n Notification

	if len(body) > 0 {
		if err := json.Unmarshal(body, &n); err != nil {
			return nil, err
		}
	}

	if n.Type == "" && n.Topic == "" {
		n.Topic = query.Get("topic")
		if n.Topic == "" {
			n.Type = query.Get("type")
		}
	}
	if n.Data.ID == "" && n.Resource == "" {
		n.Data.ID = query.Get("id")
		if n.Data.ID == "" {
			n.Data.ID = query.Get("data.id")
		}
	}

	return &n, nil
}

// PaymentID extrai o id do pagamento nas duas formas do protocolo.
func (n *Notification) PaymentID() (string, bool) {
	switch {
	case n.Type == "payment":
		return n.Data.ID, n.Data.ID != ""
	case n.Topic == "payment":
		if n.Resource != "" {
			return lastSegment(n.Resource), true
		}
		return n.Data.ID, n.Data.ID != ""
	}
	return "", false
}

// PreapprovalID extrai o id do preapproval quando a notificação é de
// assinatura (mudança de status ou pagamento autorizado).
func (n *Notification) PreapprovalID() (string, bool) {
	kind := n.Type
	if kind == "" {
		kind = n.Topic
	}

	switch kind {
	case "preapproval", "subscription_preapproval", "subscription_authorized_payment":
		if n.Data.ID != "" {
			return n.Data.ID, true
		}
		if n.Resource != "" {
			return lastSegment(n.Resource), true
		}
	}
	return "", false
}

// IsPaymentKind diz se a notificação fala de um pagamento avulso.
func (n *Notification) IsPaymentKind() bool {
	return n.Type == "payment" || n.Topic == "payment"
}

func lastSegment(resource string) string {
	resource = strings.TrimRight(resource, "/")
	if i := strings.LastIndex(resource, "/"); i >= 0 {
		return resource[i+1:]
	}
	return resource
}
