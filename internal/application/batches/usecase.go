package batches

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

// UseCase casos de uso de lotes de producción.
type UseCase struct {
	batchRepo repository.BatchRepository
}

// NewUseCase construye el caso de uso de lotes.
func NewUseCase(batchRepo repository.BatchRepository) *UseCase {
	return &UseCase{batchRepo: batchRepo}
}

// Create abre un lote nuevo con fecha de inicio ahora.
func (uc *UseCase) Create(ctx context.Context, name string) (*entity.Batch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	batch := &entity.Batch{Name: name, StartDate: time.Now(), IsActive: true}
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Close cierra el lote: inactivo y con fecha de fin.
func (uc *UseCase) Close(ctx context.Context, id int64) error {
	return uc.batchRepo.Close(ctx, id)
}

// LastActive devuelve el lote activo más reciente o ErrNotFound.
func (uc *UseCase) LastActive(ctx context.Context) (*entity.Batch, error) {
	batch, err := uc.batchRepo.LastActive(ctx)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// ListInactive devuelve los lotes cerrados con transacciones e inventario de
// pollitos.
func (uc *UseCase) ListInactive(ctx context.Context) ([]repository.InactiveBatchSummary, error) {
	return uc.batchRepo.ListInactive(ctx)
}
