package repository

import "github.com/pyrocontrol/inventario-api/internal/domain/entity"

// EstadisticasRepository vistas de solo lectura sobre el catálogo; se
// recalculan en cada llamada, sin caché.
type EstadisticasRepository interface {
	// PorCategoria agrupa los materiales activos por categoría.
	PorCategoria() ([]*entity.EstadisticaCategoria, error)
	// Resumen agrega todos los materiales activos sin agrupar.
	Resumen() (*entity.ResumenInventario, error)
}
