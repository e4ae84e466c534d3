// Package pdf genera el reporte imprimible de alertas de stock usando
// Maroto v2. Una página A4 con encabezado, tabla de materiales en alerta
// (críticos primero, como los entrega el caso de uso) y totales al pie.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/application/inventario"
	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ inventario.AlertReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventario.AlertReportGenerator con Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerarReporteAlertas genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerarReporteAlertas(
	_ context.Context,
	alertas []dto.AlertaMaterialResponse,
	generadoEn time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Alertas de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generadoEn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, a := range alertas {
		m.AddRows(alertaRow(a))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(alertas))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generadoEn time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Alertas de Stock - Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Materiales en nivel BAJO o CRITICO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generadoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 2, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
	return row.New(8).Add(
		col.New(2).Add(text.New("SKU", header)),
		col.New(3).Add(text.New("Material", header)),
		col.New(2).Add(text.New("Categoría", header)),
		col.New(1).Add(text.New("Nivel", header)),
		col.New(2).Add(text.New("Stock / Mínimo", headerRight)),
		col.New(2).Add(text.New("Faltante", headerRight)),
	)
}

func alertaRow(a dto.AlertaMaterialResponse) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := props.Text{Size: 8, Top: 1, Align: align.Right}
	nivel := props.Text{Size: 8, Top: 1, Color: colorGray}
	if a.NivelAlerta == string(entity.NivelCritico) {
		nivel = props.Text{Size: 8, Top: 1, Style: fontstyle.Bold, Color: colorPrimary}
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(a.SKU, cell)),
		col.New(3).Add(text.New(a.NombreMaterial, cell)),
		col.New(2).Add(text.New(a.Categoria, cell)),
		col.New(1).Add(text.New(a.NivelAlerta, nivel)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%s / %s %s", a.StockActual.String(), a.StockMinimo.String(), a.UnidadMedida),
			cellRight,
		)),
		col.New(2).Add(text.New(a.CantidadFaltante.String(), cellRight)),
	)
}

func footerRow(alertas []dto.AlertaMaterialResponse) core.Row {
	criticas := 0
	for _, a := range alertas {
		if a.NivelAlerta == string(entity.NivelCritico) {
			criticas++
		}
	}
	resumen := fmt.Sprintf("Total alertas: %d (críticas: %d, bajo stock: %d)",
		len(alertas), criticas, len(alertas)-criticas)
	return row.New(8).Add(
		col.New(12).Add(text.New(resumen, props.Text{Size: 9, Top: 2, Color: colorGray})),
	)
}
