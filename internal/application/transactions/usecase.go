package transactions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
	"github.com/jhoicas/avicola-api/pkg/logger"
)

// UseCase implementa las transacciones financieras y su puente hacia el
// ledger de inventario: un gasto inventariable reabastece el linaje y una
// venta descuenta pollitos vendidos, ambos sin cascada.
type UseCase struct {
	txRunner  TxRunner
	txRepo    repository.TransactionRepository
	batchRepo repository.BatchRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de transacciones.
func NewUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, batchRepo repository.BatchRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, txRepo: txRepo, batchRepo: batchRepo, log: log}
}

// AddInput entrada para add-transaction. TotalCost en cero o ausente se
// calcula como Quantity * PricePerUnit.
type AddInput struct {
	BatchID      int64
	Date         time.Time
	Type         string
	ItemType     string
	ItemName     string
	ContactName  string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalCost    decimal.NullDecimal
}

// Add registra la transacción y, si corresponde, toca el inventario.
func (uc *UseCase) Add(ctx context.Context, in AddInput) (*entity.Transaction, error) {
	batch, err := uc.batchRepo.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrBatchNotFound
	}

	totalCost := in.Quantity.Mul(in.PricePerUnit)
	if in.TotalCost.Valid && !in.TotalCost.Decimal.IsZero() {
		totalCost = in.TotalCost.Decimal
	}

	tx := &entity.Transaction{
		BatchID:      in.BatchID,
		Date:         in.Date,
		Type:         in.Type,
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		ContactName:  in.ContactName,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalCost:    totalCost,
	}

	switch {
	case in.Type == entity.TransactionTypeSale:
		if in.ItemType != entity.SaleItemLiveweight && in.ItemType != entity.SaleItemDressed {
			return nil, domain.ErrInvalidItemType
		}
		if err := uc.addSale(ctx, tx); err != nil {
			return nil, err
		}
	case in.Type == entity.TransactionTypeExpense && entity.Commodity(in.ItemType).Valid():
		if err := uc.addInventoriableExpense(ctx, tx); err != nil {
			return nil, err
		}
	default:
		// Gasto no inventariable (servicios, mano de obra): inserción simple.
		if err := uc.txRepo.Create(ctx, tx); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// addSale resuelve el nombre del ítem desde la última transacción de
// pollitos del lote e incrementa sold en la última fila del linaje.
func (uc *UseCase) addSale(ctx context.Context, tx *entity.Transaction) error {
	return uc.txRunner.RunBridge(ctx, func(
		txRepo repository.TransactionRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		itemName, err := txRepo.LatestChicksItemName(ctx, tx.BatchID)
		if err != nil {
			return err
		}
		if itemName == nil {
			return domain.ErrNoChicksTransaction
		}
		tx.ItemName = *itemName
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		return ledgerRepo.AddToSold(ctx, tx.BatchID, tx.ItemName, tx.Quantity)
	})
}

// addInventoriableExpense inserta la transacción y reabastece el linaje:
// incremento aditivo si ya existe, primera fila si no. Nunca cascada.
func (uc *UseCase) addInventoriableExpense(ctx context.Context, tx *entity.Transaction) error {
	return uc.txRunner.RunBridge(ctx, func(
		txRepo repository.TransactionRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		key := entity.LineageKey{
			BatchID:  tx.BatchID,
			ItemType: entity.Commodity(tx.ItemType),
			ItemName: tx.ItemName,
		}
		exists, err := ledgerRepo.LineageExists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return ledgerRepo.AddToAmountLeft(ctx, key, tx.Quantity, tx.ID)
		}
		txID := tx.ID
		return ledgerRepo.Insert(ctx, &entity.LedgerRow{
			BatchID:       key.BatchID,
			ItemType:      key.ItemType,
			ItemName:      key.ItemName,
			Date:          tx.Date,
			AmountLeft:    tx.Quantity,
			TransactionID: &txID,
		})
	})
}

// ListByBatch devuelve las transacciones de un lote activo.
func (uc *UseCase) ListByBatch(ctx context.Context, batchID int64) ([]entity.Transaction, error) {
	return uc.txRepo.ListByBatch(ctx, batchID)
}

// GetByID devuelve una transacción o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// EditInput entrada para edit-transaction/:id: reemplazo completo.
type EditInput struct {
	ID           int64
	BatchID      int64
	Date         time.Time
	Type         string
	ItemType     string
	ItemName     string
	ContactName  string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	TotalCost    decimal.Decimal
}

// Edit reescribe la transacción. No toca el inventario: la corrección del
// ledger va por las operaciones de edición de stock.
func (uc *UseCase) Edit(ctx context.Context, in EditInput) error {
	return uc.txRepo.Update(ctx, &entity.Transaction{
		ID:           in.ID,
		BatchID:      in.BatchID,
		Date:         in.Date,
		Type:         in.Type,
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		ContactName:  in.ContactName,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalCost:    in.TotalCost,
	})
}

// Delete elimina la transacción. Tampoco toca el inventario.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRepo.Delete(ctx, id)
}

// ListItemTypes devuelve los pares (tipo, nombre) distintos con lote activo.
func (uc *UseCase) ListItemTypes(ctx context.Context) ([]entity.ItemTypeEntry, error) {
	return uc.txRepo.ListItemTypes(ctx)
}
