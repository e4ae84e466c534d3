package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/domain"
	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, sku, nombre_material, categoria, stock_actual, stock_minimo,
	unidad_medida, precio_unitario, proveedor, ubicacion_almacen, notas, activo,
	fecha_ultima_entrada, fecha_ultima_salida, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable
// con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. SKU único: 23505 -> domain.ErrDuplicate.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO inventario (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.SKU, m.NombreMaterial, string(m.Categoria), m.StockActual, m.StockMinimo,
		string(m.UnidadMedida), m.PrecioUnitario, nullIfEmpty(m.Proveedor),
		nullIfEmpty(m.UbicacionAlmacen), m.Notas, m.Activo,
		m.FechaUltimaEntrada, m.FechaUltimaSalida, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID (incluye inactivos, para auditoría).
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM inventario WHERE id = $1`
	return r.getOne(query, id)
}

// GetBySKU obtiene un material por SKU.
func (r *MaterialRepo) GetBySKU(sku string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM inventario WHERE sku = $1`
	return r.getOne(query, sku)
}

// GetForUpdate obtiene el material activo y bloquea su fila (SELECT FOR
// UPDATE) hasta el fin de la transacción. Movimientos concurrentes sobre el
// mismo material se serializan aquí; materiales distintos no se bloquean
// entre sí.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM inventario
		WHERE id = $1 AND activo FOR UPDATE`
	return r.getOne(query, id)
}

func (r *MaterialRepo) getOne(query string, arg any) (*entity.Material, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales activos según filtros, ordenados por categoría y nombre.
func (r *MaterialRepo) List(filters repository.MaterialFilters) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM inventario WHERE activo`
	var args []any
	pos := 1

	if filters.Categoria != "" {
		query += fmt.Sprintf(" AND categoria = $%d", pos)
		args = append(args, string(filters.Categoria))
		pos++
	}
	// Mismas expresiones de umbral que ClasificarNivel, en NUMERIC.
	switch filters.NivelStock {
	case entity.NivelCritico:
		query += " AND stock_actual <= stock_minimo"
	case entity.NivelBajo:
		query += " AND stock_actual > stock_minimo AND stock_actual <= (stock_minimo * 1.5)"
	case entity.NivelNormal:
		query += " AND stock_actual > (stock_minimo * 1.5)"
	}
	if filters.Search != "" {
		query += fmt.Sprintf(" AND (sku ILIKE $%d OR nombre_material ILIKE $%d OR proveedor ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filters.Search+"%")
		pos++
	}
	query += " ORDER BY categoria, nombre_material"

	return r.list(query, args...)
}

// ListAlertas lista materiales activos en BAJO o CRITICO, críticos primero y
// luego por categoría.
func (r *MaterialRepo) ListAlertas() ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM inventario
		WHERE activo AND stock_actual <= (stock_minimo * 1.5)
		ORDER BY CASE WHEN stock_actual <= stock_minimo THEN 1 ELSE 2 END, categoria`
	return r.list(query)
}

func (r *MaterialRepo) list(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materiales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update escribe los campos editables. Ni sku ni stock_actual aparecen en el
// SET: el primero es inmutable y el segundo solo lo muta UpdateStock dentro
// de la transacción de movimientos.
func (r *MaterialRepo) Update(m *entity.Material) (int64, error) {
	query := `
		UPDATE inventario
		SET nombre_material = $2, categoria = $3, stock_minimo = $4, unidad_medida = $5,
			precio_unitario = $6, proveedor = $7, ubicacion_almacen = $8, notas = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.NombreMaterial, string(m.Categoria), m.StockMinimo, string(m.UnidadMedida),
		m.PrecioUnitario, nullIfEmpty(m.Proveedor), nullIfEmpty(m.UbicacionAlmacen),
		m.Notas, m.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("update material: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// UpdateStock fija el stock y estampa la fecha del movimiento según su tipo.
// El ajuste no estampa ninguna fecha.
func (r *MaterialRepo) UpdateStock(id string, nuevoStock decimal.Decimal, tipo string, now time.Time) error {
	var query string
	switch tipo {
	case entity.MovimientoEntrada:
		query = `UPDATE inventario SET stock_actual = $2, fecha_ultima_entrada = $3, updated_at = $3 WHERE id = $1`
	case entity.MovimientoSalida:
		query = `UPDATE inventario SET stock_actual = $2, fecha_ultima_salida = $3, updated_at = $3 WHERE id = $1`
	default:
		query = `UPDATE inventario SET stock_actual = $2, updated_at = $3 WHERE id = $1`
	}
	if _, err := r.q.Exec(context.Background(), query, id, nuevoStock, now); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Deactivate baja lógica. El predicado AND activo hace la operación
// idempotente: un material ya inactivo reporta 0 filas afectadas.
func (r *MaterialRepo) Deactivate(id string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventario SET activo = FALSE, updated_at = now() WHERE id = $1 AND activo`, id)
	if err != nil {
		return 0, fmt.Errorf("deactivate material: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var categoria, unidad string
	var proveedor, ubicacion *string
	err := row.Scan(
		&m.ID, &m.SKU, &m.NombreMaterial, &categoria, &m.StockActual, &m.StockMinimo,
		&unidad, &m.PrecioUnitario, &proveedor, &ubicacion, &m.Notas, &m.Activo,
		&m.FechaUltimaEntrada, &m.FechaUltimaSalida, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Categoria = entity.Categoria(categoria)
	m.UnidadMedida = entity.UnidadMedida(unidad)
	if proveedor != nil {
		m.Proveedor = *proveedor
	}
	if ubicacion != nil {
		m.UbicacionAlmacen = *ubicacion
	}
	return &m, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
