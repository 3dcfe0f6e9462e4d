package dto

import (
	"time"

	"github.com/jhoicas/avicola-api/internal/domain/entity"
)

// SaveContactRequest entrada de save-contact; type es 'buyer' o 'seller'.
type SaveContactRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SaveContactResponse respuesta con el id generado.
type SaveContactResponse struct {
	ContactID int64 `json:"contactId"`
}

// ContactResponse un contacto para el autocompletado.
type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// FromContacts mapea un listado de contactos.
func FromContacts(contacts []entity.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactResponse{ID: c.ID, Name: c.Name, Type: c.Type, CreatedAt: c.CreatedAt})
	}
	return out
}
