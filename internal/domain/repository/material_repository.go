package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
)

// MaterialFilters filtros opcionales del listado de materiales.
type MaterialFilters struct {
	Categoria  entity.Categoria  // vacío = todas
	NivelStock entity.NivelStock // vacío = todos
	Search     string            // substring sobre sku/nombre/proveedor, case-insensitive
}

// MaterialRepository puerto de persistencia del catálogo de materiales.
// StockActual nunca se escribe por Update: solo por UpdateStock, dentro de la
// transacción del motor de movimientos.
type MaterialRepository interface {
	// Create persiste un material nuevo. Retorna domain.ErrDuplicate si el SKU ya existe.
	Create(material *entity.Material) error
	// GetByID retorna (nil, nil) si no existe.
	GetByID(id string) (*entity.Material, error)
	// GetBySKU retorna (nil, nil) si no existe.
	GetBySKU(sku string) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material activo (SELECT FOR UPDATE).
	// Retorna (nil, nil) si no existe o está inactivo. Solo tiene sentido
	// dentro de una transacción.
	GetForUpdate(id string) (*entity.Material, error)
	// List retorna los materiales activos que cumplen los filtros, ordenados
	// por categoría y nombre.
	List(filters MaterialFilters) ([]*entity.Material, error)
	// ListAlertas retorna los materiales activos en nivel BAJO o CRITICO,
	// críticos primero y luego por categoría.
	ListAlertas() ([]*entity.Material, error)
	// Update escribe los campos editables (nunca sku ni stock_actual) y
	// retorna el número de filas afectadas.
	Update(material *entity.Material) (int64, error)
	// UpdateStock fija el stock y estampa fecha_ultima_entrada o
	// fecha_ultima_salida según el tipo (ajuste no estampa ninguna).
	UpdateStock(id string, nuevoStock decimal.Decimal, tipo string, now time.Time) error
	// Deactivate baja lógica; retorna filas afectadas (0 si ya estaba inactivo).
	Deactivate(id string) (int64, error)
}
