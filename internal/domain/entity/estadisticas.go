package entity

import "github.com/shopspring/decimal"

// EstadisticaCategoria agrega los materiales activos de una categoría.
type EstadisticaCategoria struct {
	Categoria           Categoria
	TotalMateriales     int
	ValorInventario     decimal.Decimal // SUM(stock_actual * precio_unitario), precio nulo cuenta como cero
	MaterialesCriticos  int
	MaterialesBajoStock int // BAJO pero no CRITICO
}

// ResumenInventario agrega todos los materiales activos sin agrupar.
type ResumenInventario struct {
	TotalMateriales      int
	ValorTotalInventario decimal.Decimal
	TotalCriticos        int
	TotalBajoStock       int
	TotalCategorias      int
	TotalProveedores     int
}
