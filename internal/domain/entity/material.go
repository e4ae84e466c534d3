package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/domain"
)

// Categoria de material (conjunto cerrado, validado en construcción).
type Categoria string

const (
	CategoriaWire     Categoria = "Wire"
	CategoriaCable    Categoria = "Cable"
	CategoriaShruds   Categoria = "Shruds"
	CategoriaHead     Categoria = "Head"
	CategoriaTail     Categoria = "Tail"
	CategoriaBox      Categoria = "Box"
	CategoriaPolvora  Categoria = "Polvora"
	CategoriaQuimicos Categoria = "Quimicos"
	CategoriaPapel    Categoria = "Papel"
	CategoriaCarton   Categoria = "Carton"
	CategoriaOtros    Categoria = "Otros"
)

var categoriasValidas = map[Categoria]bool{
	CategoriaWire: true, CategoriaCable: true, CategoriaShruds: true,
	CategoriaHead: true, CategoriaTail: true, CategoriaBox: true,
	CategoriaPolvora: true, CategoriaQuimicos: true, CategoriaPapel: true,
	CategoriaCarton: true, CategoriaOtros: true,
}

// ParseCategoria valida y convierte un string a Categoria.
func ParseCategoria(s string) (Categoria, error) {
	c := Categoria(s)
	if !categoriasValidas[c] {
		return "", domain.ErrInvalidInput
	}
	return c, nil
}

// UnidadMedida del material (conjunto cerrado, validado en construcción).
type UnidadMedida string

const (
	UnidadPieza   UnidadMedida = "PZ"
	UnidadPie     UnidadMedida = "FT"
	UnidadLibra   UnidadMedida = "LB"
	UnidadKilo    UnidadMedida = "KG"
	UnidadMetro   UnidadMedida = "M"
	UnidadCm      UnidadMedida = "CM"
	UnidadRollo   UnidadMedida = "ROLLO"
	UnidadCaja    UnidadMedida = "CAJA"
	UnidadPaquete UnidadMedida = "PAQUETE"
)

var unidadesValidas = map[UnidadMedida]bool{
	UnidadPieza: true, UnidadPie: true, UnidadLibra: true, UnidadKilo: true,
	UnidadMetro: true, UnidadCm: true, UnidadRollo: true, UnidadCaja: true,
	UnidadPaquete: true,
}

// ParseUnidadMedida valida y convierte un string a UnidadMedida.
func ParseUnidadMedida(s string) (UnidadMedida, error) {
	u := UnidadMedida(s)
	if !unidadesValidas[u] {
		return "", domain.ErrInvalidInput
	}
	return u, nil
}

// skuPattern: mayúsculas, dígitos y guiones, entre 3 y 50 caracteres.
var skuPattern = regexp.MustCompile(`^[A-Z0-9-]{3,50}$`)

// ValidSKU indica si el código cumple el formato de SKU.
func ValidSKU(sku string) bool {
	return skuPattern.MatchString(sku)
}

// Material representa un material almacenado en el inventario, identificado
// por SKU. StockActual solo se modifica vía movimientos (motor de inventario);
// SKU es inmutable después de la creación. La baja es lógica (Activo = false):
// el registro sigue siendo direccionable por ID para auditoría.
type Material struct {
	ID                 string
	SKU                string
	NombreMaterial     string
	Categoria          Categoria
	StockActual        decimal.Decimal
	StockMinimo        decimal.Decimal
	UnidadMedida       UnidadMedida
	PrecioUnitario     *decimal.Decimal
	Proveedor          string
	UbicacionAlmacen   string
	Notas              string
	Activo             bool
	FechaUltimaEntrada *time.Time
	FechaUltimaSalida  *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NivelStock devuelve la clasificación derivada del material.
func (m *Material) NivelStock() NivelStock {
	return ClasificarNivel(m.StockActual, m.StockMinimo)
}

// CantidadFaltante devuelve stock_minimo - stock_actual (negativo si hay
// excedente sobre el mínimo); se reporta en las alertas.
func (m *Material) CantidadFaltante() decimal.Decimal {
	return m.StockMinimo.Sub(m.StockActual)
}

// Valoracion devuelve stock_actual * precio_unitario (cero si no hay precio).
func (m *Material) Valoracion() decimal.Decimal {
	if m.PrecioUnitario == nil {
		return decimal.Zero
	}
	return m.StockActual.Mul(*m.PrecioUnitario)
}
