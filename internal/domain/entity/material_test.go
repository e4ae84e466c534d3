package entity_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
)

func TestParseCategoria(t *testing.T) {
	for _, valida := range []string{"Wire", "Cable", "Shruds", "Head", "Tail", "Box", "Polvora", "Quimicos", "Papel", "Carton", "Otros"} {
		c, err := entity.ParseCategoria(valida)
		require.NoError(t, err, valida)
		assert.Equal(t, entity.Categoria(valida), c)
	}
	for _, invalida := range []string{"", "wire", "POLVORA", "Madera"} {
		_, err := entity.ParseCategoria(invalida)
		assert.Error(t, err, invalida)
	}
}

func TestParseUnidadMedida(t *testing.T) {
	for _, valida := range []string{"PZ", "FT", "LB", "KG", "M", "CM", "ROLLO", "CAJA", "PAQUETE"} {
		u, err := entity.ParseUnidadMedida(valida)
		require.NoError(t, err, valida)
		assert.Equal(t, entity.UnidadMedida(valida), u)
	}
	for _, invalida := range []string{"", "kg", "LITRO"} {
		_, err := entity.ParseUnidadMedida(invalida)
		assert.Error(t, err, invalida)
	}
}

func TestValidSKU(t *testing.T) {
	validos := []string{"WIRE-001", "ABC", "A-1", strings.Repeat("X", 50)}
	for _, sku := range validos {
		assert.True(t, entity.ValidSKU(sku), sku)
	}
	invalidos := []string{
		"",
		"AB",                      // menos de 3
		strings.Repeat("X", 51),   // más de 50
		"wire-001",                // minúsculas
		"WIRE 001",                // espacio
		"WIRE_001",                // guion bajo
		"WIRE.001",                // punto
	}
	for _, sku := range invalidos {
		assert.False(t, entity.ValidSKU(sku), sku)
	}
}

func TestMaterial_Derivados(t *testing.T) {
	precio := dec("2.50")
	m := &entity.Material{
		StockActual:    dec("4"),
		StockMinimo:    dec("5"),
		PrecioUnitario: &precio,
	}
	assert.Equal(t, entity.NivelCritico, m.NivelStock())
	assert.True(t, m.CantidadFaltante().Equal(dec("1")))
	assert.True(t, m.Valoracion().Equal(dec("10")))
}

// Sin precio unitario la valoración cuenta como cero, no como error.
func TestMaterial_ValoracionSinPrecio(t *testing.T) {
	m := &entity.Material{StockActual: dec("100"), StockMinimo: dec("1")}
	assert.True(t, m.Valoracion().Equal(decimal.Zero))
}

func TestTipoMovimientoValido(t *testing.T) {
	assert.True(t, entity.TipoMovimientoValido(entity.MovimientoEntrada))
	assert.True(t, entity.TipoMovimientoValido(entity.MovimientoSalida))
	assert.True(t, entity.TipoMovimientoValido(entity.MovimientoAjuste))
	assert.False(t, entity.TipoMovimientoValido("transferencia"))
	assert.False(t, entity.TipoMovimientoValido(""))
	assert.False(t, entity.TipoMovimientoValido("ENTRADA"))
}
