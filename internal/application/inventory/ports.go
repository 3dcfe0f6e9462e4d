package inventory

import (
	"context"

	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de ledger atado a esa tx. Garantiza atomicidad para las
// operaciones multi-statement del motor.
type TxRunner interface {
	Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error
}
