package contacts

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

// suggestionLimit máximo de sugerencias de autocompletado.
const suggestionLimit = 5

// UseCase casos de uso de contactos (compradores/vendedores).
type UseCase struct {
	contactRepo repository.ContactRepository
}

// NewUseCase construye el caso de uso de contactos.
func NewUseCase(contactRepo repository.ContactRepository) *UseCase {
	return &UseCase{contactRepo: contactRepo}
}

// Save guarda el contacto si no existe otro con el mismo nombre y tipo.
// Un duplicado no es error para el caller: devuelve el flag existed.
func (uc *UseCase) Save(ctx context.Context, name, contactType string) (contact *entity.Contact, existed bool, err error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(contactType) == "" {
		return nil, false, domain.ErrInvalidInput
	}
	c := &entity.Contact{Name: name, Type: contactType}
	if err := uc.contactRepo.Save(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return c, false, nil
}

// Suggest devuelve sugerencias de autocompletado para un prefijo y tipo.
func (uc *UseCase) Suggest(ctx context.Context, query, contactType string) ([]entity.Contact, error) {
	if strings.TrimSpace(query) == "" || strings.TrimSpace(contactType) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.contactRepo.Suggest(ctx, query, contactType, suggestionLimit)
}
