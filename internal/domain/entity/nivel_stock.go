package entity

import (
	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/domain"
)

// NivelStock clasificación de salud del stock de un material.
type NivelStock string

const (
	NivelCritico NivelStock = "CRITICO"
	NivelBajo    NivelStock = "BAJO"
	NivelNormal  NivelStock = "NORMAL"
)

// factorBajo: un material está BAJO mientras no supere stock_minimo * 1.5.
var factorBajo = decimal.NewFromFloat(1.5)

// ClasificarNivel deriva el nivel de stock a partir del stock actual y el
// mínimo. Función pura: misma entrada, mismo nivel. Los umbrales son
// inclusivos por abajo y CRITICO se evalúa antes que BAJO porque los rangos
// comparten la frontera actual == minimo. Toda la aritmética es decimal para
// que la clasificación coincida con la expresión CASE equivalente en SQL.
func ClasificarNivel(actual, minimo decimal.Decimal) NivelStock {
	if actual.LessThanOrEqual(minimo) {
		return NivelCritico
	}
	if actual.LessThanOrEqual(minimo.Mul(factorBajo)) {
		return NivelBajo
	}
	return NivelNormal
}

// ParseNivelStock valida el filtro nivel_stock de los listados.
func ParseNivelStock(s string) (NivelStock, error) {
	switch NivelStock(s) {
	case NivelCritico, NivelBajo, NivelNormal:
		return NivelStock(s), nil
	}
	return "", domain.ErrInvalidInput
}
