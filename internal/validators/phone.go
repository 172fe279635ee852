package validators

import "strings"

// NormalizePhone remove máscara e valida o mínimo de dígitos; retorna
// string vazia quando o telefone não serve como chave natural do cliente.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(strings.TrimPrefix(out, "+")) < 8 {
		return ""
	}
	return out
}
