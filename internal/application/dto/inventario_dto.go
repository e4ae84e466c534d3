package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/inventario.
type CreateMaterialRequest struct {
	SKU              string           `json:"sku"`
	NombreMaterial   string           `json:"nombre_material"`
	Categoria        string           `json:"categoria"`
	StockActual      decimal.Decimal  `json:"stock_actual"`
	StockMinimo      decimal.Decimal  `json:"stock_minimo"`
	UnidadMedida     string           `json:"unidad_medida"`
	PrecioUnitario   *decimal.Decimal `json:"precio_unitario,omitempty"`
	Proveedor        string           `json:"proveedor,omitempty"`
	UbicacionAlmacen string           `json:"ubicacion_almacen,omitempty"`
	Notas            string           `json:"notas,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/inventario/:id. Solo campos
// editables: ni sku ni stock_actual pasan por aquí.
type UpdateMaterialRequest struct {
	NombreMaterial   *string          `json:"nombre_material,omitempty"`
	Categoria        *string          `json:"categoria,omitempty"`
	StockMinimo      *decimal.Decimal `json:"stock_minimo,omitempty"`
	UnidadMedida     *string          `json:"unidad_medida,omitempty"`
	PrecioUnitario   *decimal.Decimal `json:"precio_unitario,omitempty"`
	Proveedor        *string          `json:"proveedor,omitempty"`
	UbicacionAlmacen *string          `json:"ubicacion_almacen,omitempty"`
	Notas            *string          `json:"notas,omitempty"`
}

// MaterialResponse representación de un material, con su nivel de stock derivado.
type MaterialResponse struct {
	ID                 string           `json:"id"`
	SKU                string           `json:"sku"`
	NombreMaterial     string           `json:"nombre_material"`
	Categoria          string           `json:"categoria"`
	StockActual        decimal.Decimal  `json:"stock_actual"`
	StockMinimo        decimal.Decimal  `json:"stock_minimo"`
	UnidadMedida       string           `json:"unidad_medida"`
	PrecioUnitario     *decimal.Decimal `json:"precio_unitario,omitempty"`
	Proveedor          string           `json:"proveedor,omitempty"`
	UbicacionAlmacen   string           `json:"ubicacion_almacen,omitempty"`
	Notas              string           `json:"notas,omitempty"`
	Activo             bool             `json:"activo"`
	NivelStock         string           `json:"nivel_stock"`
	FechaUltimaEntrada *time.Time       `json:"fecha_ultima_entrada,omitempty"`
	FechaUltimaSalida  *time.Time       `json:"fecha_ultima_salida,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AlertaMaterialResponse fila de la lista de alertas: el material más la
// cantidad que falta para alcanzar el mínimo.
type AlertaMaterialResponse struct {
	MaterialResponse
	NivelAlerta      string          `json:"nivel_alerta"`
	CantidadFaltante decimal.Decimal `json:"cantidad_faltante"`
}

// RegistrarMovimientoRequest body para POST /api/inventario/:id/movimiento.
// En ajuste, cantidad es el nivel absoluto objetivo; en entrada/salida es el delta.
type RegistrarMovimientoRequest struct {
	TipoMovimiento string          `json:"tipo_movimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Motivo         string          `json:"motivo"`
	Usuario        string          `json:"usuario,omitempty"`
}

// MovimientoResponse registro del libro de movimientos.
type MovimientoResponse struct {
	ID               int64           `json:"id"`
	SKU              string          `json:"sku"`
	TipoMovimiento   string          `json:"tipo_movimiento"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	CantidadAnterior decimal.Decimal `json:"cantidad_anterior"`
	CantidadNueva    decimal.Decimal `json:"cantidad_nueva"`
	Motivo           string          `json:"motivo"`
	Usuario          string          `json:"usuario,omitempty"`
	NombreMaterial   string          `json:"nombre_material,omitempty"`
	FechaMovimiento  time.Time       `json:"fecha_movimiento"`
}

// HistorialMovimientosResponse resumen del material + su historial.
type HistorialMovimientosResponse struct {
	Material    MaterialSummary      `json:"material"`
	Movimientos []MovimientoResponse `json:"movimientos"`
}

// MaterialSummary encabezado del historial de movimientos.
type MaterialSummary struct {
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	StockActual decimal.Decimal `json:"stock_actual"`
}

// EstadisticaCategoriaResponse agregado por categoría.
type EstadisticaCategoriaResponse struct {
	Categoria           string          `json:"categoria"`
	TotalMateriales     int             `json:"total_materiales"`
	ValorInventario     decimal.Decimal `json:"valor_inventario"`
	MaterialesCriticos  int             `json:"materiales_criticos"`
	MaterialesBajoStock int             `json:"materiales_bajo_stock"`
}

// ResumenGeneralResponse agregado global del inventario activo.
type ResumenGeneralResponse struct {
	TotalMateriales      int             `json:"total_materiales"`
	ValorTotalInventario decimal.Decimal `json:"valor_total_inventario"`
	TotalCriticos        int             `json:"total_criticos"`
	TotalBajoStock       int             `json:"total_bajo_stock"`
	TotalCategorias      int             `json:"total_categorias"`
	TotalProveedores     int             `json:"total_proveedores"`
}

// EstadisticasResponse cuerpo de GET /api/inventario/estadisticas.
type EstadisticasResponse struct {
	ResumenGeneral           ResumenGeneralResponse         `json:"resumen_general"`
	EstadisticasPorCategoria []EstadisticaCategoriaResponse `json:"estadisticas_por_categoria"`
}
