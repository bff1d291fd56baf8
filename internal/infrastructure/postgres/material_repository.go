package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, code, name, description, category, unit, min_quantity, current_quantity, location, photo_url, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. Código duplicado -> domain.ErrDuplicate.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, material.Description, material.Category,
		material.Unit, material.MinQuantity, material.CurrentQuantity, material.Location,
		material.PhotoURL, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material")
}

// GetByCode obtiene un material por su código de negocio.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get material by code")
}

// GetForUpdate obtiene el material bloqueando su fila (SELECT FOR UPDATE).
// Punto de serialización por material del procedimiento atómico.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material for update")
}

// UpdateQuantity persiste la nueva cantidad. Solo lo invoca el procedimiento
// atómico, dentro de la misma tx que tomó el lock y escribe el libro.
func (r *MaterialRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET current_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update material quantity: %w", err)
	}
	return nil
}

// Update actualiza los datos descriptivos. current_quantity queda fuera a propósito.
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, description = $3, category = $4, unit = $5, min_quantity = $6,
		    location = $7, photo_url = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Description, material.Category, material.Unit,
		material.MinQuantity, material.Location, material.PhotoURL, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// List lista materiales por nombre, con búsqueda opcional por código o nombre.
func (r *MaterialRepo) List(search string, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials`
	args := []any{}
	if search != "" {
		query += ` WHERE code ILIKE $1 OR name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListCritical materiales en o bajo el mínimo, mayor déficit primero.
func (r *MaterialRepo) ListCritical(limit int) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE current_quantity <= min_quantity
		ORDER BY (min_quantity - current_quantity) DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list critical materials: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina un material. Con movimientos en el libro la FK lo impide
// (ON DELETE RESTRICT) y se devuelve domain.ErrConflict.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) scanOne(row pgx.Row, op string) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Description, &m.Category, &m.Unit,
		&m.MinQuantity, &m.CurrentQuantity, &m.Location, &m.PhotoURL,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *MaterialRepo) scanMany(rows pgx.Rows) ([]*entity.Material, error) {
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Name, &m.Description, &m.Category, &m.Unit,
			&m.MinQuantity, &m.CurrentQuantity, &m.Location, &m.PhotoURL,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
