package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (value object conceptual).
const (
	MovimientoEntrada = "entrada" // suma cantidad al stock
	MovimientoSalida  = "salida"  // resta cantidad del stock
	MovimientoAjuste  = "ajuste"  // fija el stock al valor absoluto indicado
)

// TipoMovimientoValido indica si el tipo es uno de los tres reconocidos.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case MovimientoEntrada, MovimientoSalida, MovimientoAjuste:
		return true
	}
	return false
}

// Movimiento es el registro inmutable de un cambio de stock: qué cambió
// (cantidades antes/después), por qué (motivo) y quién (usuario). El libro de
// movimientos es append-only: no existen operaciones de update ni delete.
type Movimiento struct {
	ID               int64 // secuencia asignada por el libro
	SKU              string
	TipoMovimiento   string
	Cantidad         decimal.Decimal // argumento del caller (delta o valor absoluto en ajuste)
	CantidadAnterior decimal.Decimal
	CantidadNueva    decimal.Decimal
	Motivo           string
	Usuario          string
	FechaMovimiento  time.Time
}

// MovimientoConMaterial es una fila del historial unida con el nombre del
// material, para presentación.
type MovimientoConMaterial struct {
	Movimiento
	NombreMaterial string
}
