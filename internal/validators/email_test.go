package validators

import "testing"

// Só os caminhos que não tocam DNS; resolução real não pertence a teste
// de unidade.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	cases := []string{
		"sem-arroba",
		"termina-no-arroba@",
		"user@semponto",
	}

	for _, email := range cases {
		if IsEmailDomainValid(email) {
			t.Errorf("%q deveria ser rejeitado sem consultar DNS", email)
		}
	}
}
