package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusinessMatchesCode(t *testing.T) {
	err := ErrBusiness("time_conflict")

	if !IsBusiness(err, "time_conflict") {
		t.Error("deveria reconhecer o próprio código")
	}
	if IsBusiness(err, "no_credits") {
		t.Error("não deveria casar com outro código")
	}
	if IsBusiness(errors.New("boom"), "time_conflict") {
		t.Error("erro comum não é de negócio")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_barbershops_slug"}

	if !IsUniqueViolation(unique) {
		t.Error("23505 deveria ser reconhecido")
	}
	if !IsUniqueViolation(fmt.Errorf("insert barbershop: %w", unique)) {
		t.Error("deveria reconhecer o erro embrulhado")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("violação de FK não é violação de unique")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("erro comum não deveria casar")
	}
}
