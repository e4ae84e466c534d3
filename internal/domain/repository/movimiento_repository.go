package repository

import "github.com/pyrocontrol/inventario-api/internal/domain/entity"

// MovimientoRepository puerto del libro de movimientos. Append-only por
// diseño: es la pista de auditoría del inventario, no expone update ni delete.
type MovimientoRepository interface {
	// Create agrega un registro al libro y asigna ID de secuencia y fecha.
	Create(movimiento *entity.Movimiento) error
	// ListByMaterial retorna los movimientos de un material (por ID de
	// material), más recientes primero, acotados por limit.
	ListByMaterial(materialID string, limit int) ([]*entity.MovimientoConMaterial, error)
}
