package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, material_id, user_id, type, quantity, quantity_before, quantity_after, note, withdrawal_signature, status, created_at, approved_by, approved_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro de movimientos es append-only salvo decisión y firma.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un asiento en el libro de movimientos.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MaterialID, movement.UserID, movement.Type,
		movement.Quantity, movement.QuantityBefore, movement.QuantityAfter,
		movement.Note, movement.WithdrawalSignature, movement.Status,
		movement.CreatedAt, movement.ApprovedBy, movement.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement")
}

// GetForUpdate obtiene el movimiento bloqueando su fila. Evita que dos
// decisiones concurrentes resuelvan la misma solicitud.
func (r *MovementRepo) GetForUpdate(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement for update")
}

// UpdateDecision resuelve una solicitud pendiente dejando constancia del
// aprobador y de las cantidades congeladas en el momento de aplicar.
func (r *MovementRepo) UpdateDecision(id, status, approvedBy string, approvedAt time.Time, before, after decimal.Decimal) error {
	query := `
		UPDATE movements
		SET status = $2, approved_by = $3, approved_at = $4, quantity_before = $5, quantity_after = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, approvedBy, approvedAt, before, after)
	if err != nil {
		return fmt.Errorf("update movement decision: %w", err)
	}
	return nil
}

// AttachSignature guarda la firma de retirada (data URL) sobre el movimiento.
func (r *MovementRepo) AttachSignature(id, signature string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movements SET withdrawal_signature = $2 WHERE id = $1`,
		id, signature,
	)
	if err != nil {
		return fmt.Errorf("attach movement signature: %w", err)
	}
	return nil
}

// ListByStatus lista movimientos por estado. Los pendientes salen en orden de
// llegada (FIFO de la cola de aprobación); el resto, más recientes primero.
func (r *MovementRepo) ListByStatus(status string, limit, offset int) ([]*entity.Movement, error) {
	order := "DESC"
	if status == entity.MovementStatusPending {
		order = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT `+movementColumns+`
		FROM movements
		WHERE status = $1
		ORDER BY created_at %s
		LIMIT $2 OFFSET $3`, order)
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by status: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByMaterial historial de un material, más reciente primero.
func (r *MovementRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE material_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by material: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByUser movimientos solicitados por un usuario, más reciente primero.
func (r *MovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by user: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// List historial general con rango de fechas opcional.
func (r *MovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.MaterialID, &m.UserID, &m.Type, &m.Quantity,
		&m.QuantityBefore, &m.QuantityAfter, &m.Note, &m.WithdrawalSignature,
		&m.Status, &m.CreatedAt, &m.ApprovedBy, &m.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *MovementRepo) scanMany(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.MaterialID, &m.UserID, &m.Type, &m.Quantity,
			&m.QuantityBefore, &m.QuantityAfter, &m.Note, &m.WithdrawalSignature,
			&m.Status, &m.CreatedAt, &m.ApprovedBy, &m.ApprovedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
