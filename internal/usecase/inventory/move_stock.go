package inventory

import (
	"context"

	"github.com/navalhadigital/barber-saas/internal/audit"
	domain "github.com/navalhadigital/barber-saas/internal/domain/inventory"
	"github.com/navalhadigital/barber-saas/internal/httperr"
	"github.com/navalhadigital/barber-saas/internal/models"
)

// ======================================================
// MOVE STOCK
// ======================================================

type MoveStockInput struct {
	BarbershopID uint
	ProductID    uint
	Kind         string
	Quantity     int
	Reason       string
	UserID       *uint
}

type MoveStock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMoveStock(repo domain.Repository, auditDisp *audit.Dispatcher) *MoveStock {
	return &MoveStock{repo: repo, audit: auditDisp}
}

func (uc *MoveStock) Execute(ctx context.Context, in MoveStockInput) (*models.StockMovement, error) {
	if !domain.IsValidKind(domain.Kind(in.Kind)) {
		return nil, httperr.ErrBusiness("invalid_movement_kind")
	}

	m := &models.StockMovement{
		BarbershopID: in.BarbershopID,
		ProductID:    in.ProductID,
		Kind:         in.Kind,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		UserID:       in.UserID,
	}

	// Saldos anterior/novo são calculados dentro da transação com a
	// linha do produto travada.
	if err := uc.repo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.BarbershopID,
			UserID:       in.UserID,
			Action:       "stock_movement",
			Entity:       "product",
			EntityID:     &m.ProductID,
			Metadata: map[string]any{
				"kind":     m.Kind,
				"quantity": m.Quantity,
				"previous": m.PreviousStock,
				"new":      m.NewStock,
			},
		})
	}
	return m, nil
}
