package postgres

import (
	"context"
	"fmt"

	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lista: el libro es append-only.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create agrega el registro al libro. La secuencia y la fecha las asigna la
// tabla; se devuelven en el propio movimiento.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos_inventario
			(sku, tipo_movimiento, cantidad, cantidad_anterior, cantidad_nueva, motivo, usuario, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	usuario := (*string)(nil)
	if m.Usuario != "" {
		usuario = &m.Usuario
	}
	err := r.q.QueryRow(context.Background(), query,
		m.SKU, m.TipoMovimiento, m.Cantidad, m.CantidadAnterior, m.CantidadNueva,
		m.Motivo, usuario, m.FechaMovimiento,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByMaterial lista los movimientos de un material (por ID), más recientes
// primero, unidos con el nombre del material para presentación.
func (r *MovimientoRepo) ListByMaterial(materialID string, limit int) ([]*entity.MovimientoConMaterial, error) {
	query := `
		SELECT mi.id, mi.sku, mi.tipo_movimiento, mi.cantidad, mi.cantidad_anterior,
			mi.cantidad_nueva, mi.motivo, mi.usuario, mi.fecha_movimiento, i.nombre_material
		FROM movimientos_inventario mi
		JOIN inventario i ON mi.sku = i.sku
		WHERE i.id = $1
		ORDER BY mi.fecha_movimiento DESC, mi.id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, materialID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoConMaterial
	for rows.Next() {
		var m entity.MovimientoConMaterial
		var usuario *string
		if err := rows.Scan(&m.ID, &m.SKU, &m.TipoMovimiento, &m.Cantidad, &m.CantidadAnterior,
			&m.CantidadNueva, &m.Motivo, &usuario, &m.FechaMovimiento, &m.NombreMaterial); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if usuario != nil {
			m.Usuario = *usuario
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
