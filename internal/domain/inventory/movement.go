package inventory

import "github.com/navalhadigital/barber-saas/internal/httperr"

// ===============================
// Stock Movement Kinds
// ===============================

type Kind string

const (
	KindEntrada Kind = "entrada"
	KindSaida   Kind = "saida"
	KindAjuste  Kind = "ajuste"
	KindPerda   Kind = "perda"
	KindVenda   Kind = "venda"
)

func IsValidKind(k Kind) bool {
	switch k {
	case KindEntrada, KindSaida, KindAjuste, KindPerda, KindVenda:
		return true
	}
	return false
}

// NextStock calcula o novo saldo a partir do atual. Ajuste define o
// saldo absoluto; os demais somam ou subtraem. Saldo nunca fica negativo.
func NextStock(current int, kind Kind, quantity int) (int, error) {
	switch kind {
	case KindAjuste:
		if quantity < 0 {
			return 0, httperr.ErrBusiness("invalid_quantity")
		}
		return quantity, nil

	case KindEntrada:
		if quantity <= 0 {
			return 0, httperr.ErrBusiness("invalid_quantity")
		}
		return current + quantity, nil

	case KindSaida, KindPerda, KindVenda:
		if quantity <= 0 {
			return 0, httperr.ErrBusiness("invalid_quantity")
		}
		next := current - quantity
		if next < 0 {
			return 0, httperr.ErrBusiness("insufficient_stock")
		}
		return next, nil
	}

	return 0, httperr.ErrBusiness("invalid_movement_kind")
}
