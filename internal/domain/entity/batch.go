package entity

import "time"

// Batch es un ciclo de producción. Un linaje termina (conceptualmente) cuando
// su lote se cierra (is_active = false); el motor no garantiza nada después.
type Batch struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   *time.Time
	IsActive  bool
}
