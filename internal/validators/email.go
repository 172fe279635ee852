package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid aceita o e-mail quando o domínio resolve via MX ou,
// na falta de MX, via A/AAAA. Não valida a caixa do usuário; a barreira é
// contra domínio digitado errado no cadastro.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
