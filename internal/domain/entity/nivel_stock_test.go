package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestClasificarNivel_Umbrales cubre los límites exactos de la clasificación:
// los umbrales son inclusivos por abajo y CRITICO se evalúa antes que BAJO.
func TestClasificarNivel_Umbrales(t *testing.T) {
	cases := []struct {
		nombre   string
		actual   string
		minimo   string
		esperado entity.NivelStock
	}{
		{"igual al minimo es CRITICO", "5", "5", entity.NivelCritico},
		{"bajo el minimo es CRITICO", "4", "5", entity.NivelCritico},
		{"cero con minimo cero es CRITICO", "0", "0", entity.NivelCritico},
		{"apenas sobre el minimo es BAJO", "5.001", "5", entity.NivelBajo},
		{"exactamente minimo*1.5 es BAJO", "7.5", "5", entity.NivelBajo},
		{"sobre minimo*1.5 es NORMAL", "7.501", "5", entity.NivelNormal},
		{"una unidad sobre el umbral es NORMAL", "8.5", "5", entity.NivelNormal},
		{"muy por encima es NORMAL", "100", "5", entity.NivelNormal},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			nivel := entity.ClasificarNivel(dec(tc.actual), dec(tc.minimo))
			assert.Equal(t, tc.esperado, nivel)
		})
	}
}

// TestClasificarNivel_FuncionPura verifica que llamadas repetidas con la misma
// entrada devuelven siempre el mismo nivel.
func TestClasificarNivel_FuncionPura(t *testing.T) {
	actual, minimo := dec("7.5"), dec("5")
	primero := entity.ClasificarNivel(actual, minimo)
	for i := 0; i < 10; i++ {
		assert.Equal(t, primero, entity.ClasificarNivel(actual, minimo))
	}
}

// TestClasificarNivel_PrecisionDecimal: la frontera minimo*1.5 se calcula en
// decimal, sin redondeo binario. Con valores que en float64 quedarían al
// borde, la clasificación no oscila.
func TestClasificarNivel_PrecisionDecimal(t *testing.T) {
	// 0.1 no es representable exacto en binario; en decimal 0.3 <= 0.2*1.5 vale.
	assert.Equal(t, entity.NivelBajo, entity.ClasificarNivel(dec("0.3"), dec("0.2")))
	assert.Equal(t, entity.NivelNormal, entity.ClasificarNivel(dec("0.301"), dec("0.2")))
}

func TestParseNivelStock(t *testing.T) {
	for _, valido := range []string{"CRITICO", "BAJO", "NORMAL"} {
		n, err := entity.ParseNivelStock(valido)
		assert.NoError(t, err)
		assert.Equal(t, entity.NivelStock(valido), n)
	}
	_, err := entity.ParseNivelStock("critico")
	assert.Error(t, err, "el filtro es sensible a mayúsculas")
	_, err = entity.ParseNivelStock("ALTO")
	assert.Error(t, err)
}
