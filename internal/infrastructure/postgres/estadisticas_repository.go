package postgres

import (
	"context"
	"fmt"

	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

var _ repository.EstadisticasRepository = (*EstadisticasRepo)(nil)

// EstadisticasRepo rollups de solo lectura sobre el inventario activo. Usa
// las mismas expresiones de umbral que los filtros de nivel para que conteos
// y clasificación nunca discrepen.
type EstadisticasRepo struct {
	q Querier
}

// NewEstadisticasRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstadisticasRepository(q Querier) *EstadisticasRepo {
	return &EstadisticasRepo{q: q}
}

// PorCategoria agrega los materiales activos por categoría. Precio nulo
// cuenta como cero en la valoración.
func (r *EstadisticasRepo) PorCategoria() ([]*entity.EstadisticaCategoria, error) {
	query := `
		SELECT categoria,
			COUNT(*) AS total_materiales,
			COALESCE(SUM(stock_actual * COALESCE(precio_unitario, 0)), 0) AS valor_inventario,
			COUNT(*) FILTER (WHERE stock_actual <= stock_minimo) AS materiales_criticos,
			COUNT(*) FILTER (WHERE stock_actual > stock_minimo AND stock_actual <= (stock_minimo * 1.5)) AS materiales_bajo_stock
		FROM inventario
		WHERE activo
		GROUP BY categoria
		ORDER BY categoria`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("estadisticas por categoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.EstadisticaCategoria
	for rows.Next() {
		var e entity.EstadisticaCategoria
		var categoria string
		if err := rows.Scan(&categoria, &e.TotalMateriales, &e.ValorInventario,
			&e.MaterialesCriticos, &e.MaterialesBajoStock); err != nil {
			return nil, fmt.Errorf("scan estadistica: %w", err)
		}
		e.Categoria = entity.Categoria(categoria)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Resumen agrega todos los materiales activos sin agrupar, más los conteos
// de categorías y proveedores distintos.
func (r *EstadisticasRepo) Resumen() (*entity.ResumenInventario, error) {
	query := `
		SELECT COUNT(*) AS total_materiales,
			COALESCE(SUM(stock_actual * COALESCE(precio_unitario, 0)), 0) AS valor_total_inventario,
			COUNT(*) FILTER (WHERE stock_actual <= stock_minimo) AS total_criticos,
			COUNT(*) FILTER (WHERE stock_actual > stock_minimo AND stock_actual <= (stock_minimo * 1.5)) AS total_bajo_stock,
			COUNT(DISTINCT categoria) AS total_categorias,
			COUNT(DISTINCT proveedor) AS total_proveedores
		FROM inventario
		WHERE activo`
	var res entity.ResumenInventario
	err := r.q.QueryRow(context.Background(), query).Scan(
		&res.TotalMateriales, &res.ValorTotalInventario, &res.TotalCriticos,
		&res.TotalBajoStock, &res.TotalCategorias, &res.TotalProveedores,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen inventario: %w", err)
	}
	return &res, nil
}
