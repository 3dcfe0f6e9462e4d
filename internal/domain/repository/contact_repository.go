package repository

import (
	"context"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para contactos.
type ContactRepository interface {
	// Save inserta el contacto si no existe otro con el mismo nombre y tipo;
	// devuelve domain.ErrDuplicate si ya existe.
	Save(ctx context.Context, contact *entity.Contact) error
	// Suggest devuelve hasta limit contactos del tipo dado cuyo nombre
	// contiene query, orden alfabético.
	Suggest(ctx context.Context, query, contactType string, limit int) ([]entity.Contact, error)
}
