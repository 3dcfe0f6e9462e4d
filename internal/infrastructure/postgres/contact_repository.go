package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/avicola-api/internal/domain"
	"github.com/jhoicas/avicola-api/internal/domain/entity"
	"github.com/jhoicas/avicola-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador de contactos.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Save inserta el contacto si no existe otro con el mismo nombre y tipo.
func (r *ContactRepo) Save(ctx context.Context, contact *entity.Contact) error {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM contacts WHERE name = $1 AND type = $2)`,
		contact.Name, contact.Type,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check contact: %w", err)
	}
	if exists {
		return domain.ErrDuplicate
	}
	query := `
		INSERT INTO contacts (name, type, created_at)
		VALUES ($1, $2, now())
		RETURNING id, created_at`
	err = r.q.QueryRow(ctx, query, contact.Name, contact.Type).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Suggest devuelve hasta limit contactos del tipo dado cuyo nombre contiene
// query, orden alfabético.
func (r *ContactRepo) Suggest(ctx context.Context, query, contactType string, limit int) ([]entity.Contact, error) {
	sql := `
		SELECT id, name, type, created_at
		FROM contacts
		WHERE name ILIKE '%' || $1 || '%' AND type = $2
		ORDER BY name ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, sql, query, contactType, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest contacts: %w", err)
	}
	defer rows.Close()
	var list []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
