package entity

import "time"

// Tipos de contacto.
const (
	ContactTypeBuyer  = "buyer"
	ContactTypeSeller = "seller"
)

// Contact es un comprador o vendedor guardado para autocompletado.
type Contact struct {
	ID        int64
	Name      string
	Type      string
	CreatedAt time.Time
}
