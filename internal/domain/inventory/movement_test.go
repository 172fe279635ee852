package inventory

import (
	"testing"

	"github.com/navalhadigital/barber-saas/internal/httperr"
)

func TestNextStock(t *testing.T) {
	cases := []struct {
		name    string
		current int
		kind    Kind
		qty     int
		want    int
		errCode string
	}{
		{"entrada soma", 5, KindEntrada, 3, 8, ""},
		{"saida subtrai", 5, KindSaida, 2, 3, ""},
		{"venda subtrai", 5, KindVenda, 5, 0, ""},
		{"perda subtrai", 5, KindPerda, 1, 4, ""},
		{"ajuste é absoluto", 5, KindAjuste, 12, 12, ""},
		{"ajuste zera", 5, KindAjuste, 0, 0, ""},

		{"saida além do saldo", 2, KindSaida, 3, 0, "insufficient_stock"},
		{"venda além do saldo", 0, KindVenda, 1, 0, "insufficient_stock"},
		{"entrada zero", 5, KindEntrada, 0, 0, "invalid_quantity"},
		{"saida negativa", 5, KindSaida, -1, 0, "invalid_quantity"},
		{"ajuste negativo", 5, KindAjuste, -1, 0, "invalid_quantity"},
		{"tipo desconhecido", 5, Kind("troca"), 1, 0, "invalid_movement_kind"},
	}

	for _, c := range cases {
		got, err := NextStock(c.current, c.kind, c.qty)

		if c.errCode != "" {
			if !httperr.IsBusiness(err, c.errCode) {
				t.Errorf("%s: esperava erro %s, veio %v", c.name, c.errCode, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("%s: erro inesperado %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: NextStock = %d, esperava %d", c.name, got, c.want)
		}
	}
}

func TestIsValidKind(t *testing.T) {
	for _, k := range []Kind{KindEntrada, KindSaida, KindAjuste, KindPerda, KindVenda} {
		if !IsValidKind(k) {
			t.Errorf("%s deveria ser válido", k)
		}
	}
	if IsValidKind(Kind("emprestimo")) {
		t.Error("tipo desconhecido não pode ser válido")
	}
}
