package inventario

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/domain"
	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

// MaterialUseCase casos de uso del catálogo: CRUD de materiales, listados con
// filtros, alertas y estadísticas. El stock actual nunca se modifica por este
// camino (solo vía RegistrarMovimientoUseCase) y el SKU solo se fija al crear.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	movRepo      repository.MovimientoRepository
	statsRepo    repository.EstadisticasRepository
	reportGen    AlertReportGenerator
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovimientoRepository,
	statsRepo repository.EstadisticasRepository,
	reportGen AlertReportGenerator,
) *MaterialUseCase {
	return &MaterialUseCase{
		materialRepo: materialRepo,
		movRepo:      movRepo,
		statsRepo:    statsRepo,
		reportGen:    reportGen,
	}
}

// Create registra un material nuevo. El stock inicial cuenta como entrada:
// se estampa fecha_ultima_entrada con la creación.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if !entity.ValidSKU(in.SKU) {
		return nil, domain.ErrInvalidInput
	}
	if l := len(strings.TrimSpace(in.NombreMaterial)); l < 2 || l > 255 {
		return nil, domain.ErrInvalidInput
	}
	categoria, err := entity.ParseCategoria(in.Categoria)
	if err != nil {
		return nil, err
	}
	unidad, err := entity.ParseUnidadMedida(in.UnidadMedida)
	if err != nil {
		return nil, err
	}
	if in.StockActual.IsNegative() || in.StockMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioUnitario != nil && in.PrecioUnitario.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Proveedor) > 255 || len(in.UbicacionAlmacen) > 100 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.materialRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	material := &entity.Material{
		ID:                 uuid.New().String(),
		SKU:                in.SKU,
		NombreMaterial:     strings.TrimSpace(in.NombreMaterial),
		Categoria:          categoria,
		StockActual:        in.StockActual,
		StockMinimo:        in.StockMinimo,
		UnidadMedida:       unidad,
		PrecioUnitario:     in.PrecioUnitario,
		Proveedor:          in.Proveedor,
		UbicacionAlmacen:   in.UbicacionAlmacen,
		Notas:              in.Notas,
		Activo:             true,
		FechaUltimaEntrada: &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Get resuelve un material por UUID o, si el valor no parsea como UUID, por SKU.
// Incluye inactivos: siguen siendo direccionables para auditoría.
func (uc *MaterialUseCase) Get(idOrSKU string) (*dto.MaterialResponse, error) {
	material, err := uc.resolve(idOrSKU)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales activos aplicando los filtros opcionales. Retorna
// también el eco de filtros aplicados para la respuesta.
func (uc *MaterialUseCase) List(categoria, nivelStock, search string) ([]dto.MaterialResponse, []string, error) {
	var filters repository.MaterialFilters
	var aplicados []string

	if categoria != "" {
		c, err := entity.ParseCategoria(categoria)
		if err != nil {
			return nil, nil, err
		}
		filters.Categoria = c
		aplicados = append(aplicados, "categoria")
	}
	if nivelStock != "" {
		n, err := entity.ParseNivelStock(nivelStock)
		if err != nil {
			return nil, nil, err
		}
		filters.NivelStock = n
		aplicados = append(aplicados, "nivel_stock")
	}
	if s := strings.TrimSpace(search); s != "" {
		filters.Search = normalizarBusqueda(s)
		aplicados = append(aplicados, "search")
	}

	list, err := uc.materialRepo.List(filters)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, aplicados, nil
}

// Update modifica los campos editables de un material. Ni el SKU ni el stock
// actual pasan por aquí.
func (uc *MaterialUseCase) Update(idOrSKU string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.resolve(idOrSKU)
	if err != nil {
		return nil, err
	}
	if in.NombreMaterial != nil {
		if l := len(strings.TrimSpace(*in.NombreMaterial)); l < 2 || l > 255 {
			return nil, domain.ErrInvalidInput
		}
		material.NombreMaterial = strings.TrimSpace(*in.NombreMaterial)
	}
	if in.Categoria != nil {
		c, err := entity.ParseCategoria(*in.Categoria)
		if err != nil {
			return nil, err
		}
		material.Categoria = c
	}
	if in.StockMinimo != nil {
		if in.StockMinimo.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.StockMinimo = *in.StockMinimo
	}
	if in.UnidadMedida != nil {
		u, err := entity.ParseUnidadMedida(*in.UnidadMedida)
		if err != nil {
			return nil, err
		}
		material.UnidadMedida = u
	}
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.PrecioUnitario = in.PrecioUnitario
	}
	if in.Proveedor != nil {
		if len(*in.Proveedor) > 255 {
			return nil, domain.ErrInvalidInput
		}
		material.Proveedor = *in.Proveedor
	}
	if in.UbicacionAlmacen != nil {
		if len(*in.UbicacionAlmacen) > 100 {
			return nil, domain.ErrInvalidInput
		}
		material.UbicacionAlmacen = *in.UbicacionAlmacen
	}
	if in.Notas != nil {
		material.Notas = *in.Notas
	}
	material.UpdatedAt = time.Now()

	rows, err := uc.materialRepo.Update(material)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNoRowsAffected
	}
	return toMaterialResponse(material), nil
}

// Deactivate baja lógica del material. Idempotente: si ya estaba inactivo
// retorna 0 filas afectadas sin error; si el material no existe, ErrNotFound.
func (uc *MaterialUseCase) Deactivate(idOrSKU string) (int64, error) {
	material, err := uc.resolve(idOrSKU)
	if err != nil {
		return 0, err
	}
	return uc.materialRepo.Deactivate(material.ID)
}

// Alertas retorna los materiales en nivel BAJO o CRITICO, críticos primero,
// junto con los conteos por severidad.
func (uc *MaterialUseCase) Alertas() (alertas []dto.AlertaMaterialResponse, criticas, bajas int, err error) {
	list, err := uc.materialRepo.ListAlertas()
	if err != nil {
		return nil, 0, 0, err
	}
	alertas = make([]dto.AlertaMaterialResponse, 0, len(list))
	for _, m := range list {
		nivel := m.NivelStock()
		switch nivel {
		case entity.NivelCritico:
			criticas++
		case entity.NivelBajo:
			bajas++
		}
		alertas = append(alertas, dto.AlertaMaterialResponse{
			MaterialResponse: *toMaterialResponse(m),
			NivelAlerta:      string(nivel),
			CantidadFaltante: m.CantidadFaltante(),
		})
	}
	return alertas, criticas, bajas, nil
}

// ReporteAlertas genera el PDF de la lista de alertas vigente.
func (uc *MaterialUseCase) ReporteAlertas(ctx context.Context) ([]byte, error) {
	alertas, _, _, err := uc.Alertas()
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerarReporteAlertas(ctx, alertas, time.Now())
}

// Estadisticas retorna el resumen general y el desglose por categoría,
// recalculados en cada llamada.
func (uc *MaterialUseCase) Estadisticas() (*dto.EstadisticasResponse, error) {
	porCategoria, err := uc.statsRepo.PorCategoria()
	if err != nil {
		return nil, err
	}
	resumen, err := uc.statsRepo.Resumen()
	if err != nil {
		return nil, err
	}

	categorias := make([]dto.EstadisticaCategoriaResponse, 0, len(porCategoria))
	for _, e := range porCategoria {
		categorias = append(categorias, dto.EstadisticaCategoriaResponse{
			Categoria:           string(e.Categoria),
			TotalMateriales:     e.TotalMateriales,
			ValorInventario:     e.ValorInventario,
			MaterialesCriticos:  e.MaterialesCriticos,
			MaterialesBajoStock: e.MaterialesBajoStock,
		})
	}
	return &dto.EstadisticasResponse{
		ResumenGeneral: dto.ResumenGeneralResponse{
			TotalMateriales:      resumen.TotalMateriales,
			ValorTotalInventario: resumen.ValorTotalInventario,
			TotalCriticos:        resumen.TotalCriticos,
			TotalBajoStock:       resumen.TotalBajoStock,
			TotalCategorias:      resumen.TotalCategorias,
			TotalProveedores:     resumen.TotalProveedores,
		},
		EstadisticasPorCategoria: categorias,
	}, nil
}

// Movimientos retorna el historial de un material, más recientes primero.
func (uc *MaterialUseCase) Movimientos(idOrSKU string, limit int) (*dto.HistorialMovimientosResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	material, err := uc.resolve(idOrSKU)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListByMaterial(material.ID, limit)
	if err != nil {
		return nil, err
	}
	movimientos := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		movimientos = append(movimientos, *toMovimientoResponse(&m.Movimiento, m.NombreMaterial))
	}
	return &dto.HistorialMovimientosResponse{
		Material: dto.MaterialSummary{
			SKU:         material.SKU,
			Nombre:      material.NombreMaterial,
			StockActual: material.StockActual,
		},
		Movimientos: movimientos,
	}, nil
}

// resolve busca por UUID o por SKU según el formato del identificador.
func (uc *MaterialUseCase) resolve(idOrSKU string) (*entity.Material, error) {
	var material *entity.Material
	var err error
	if _, parseErr := uuid.Parse(idOrSKU); parseErr == nil {
		material, err = uc.materialRepo.GetByID(idOrSKU)
	} else {
		material, err = uc.materialRepo.GetBySKU(idOrSKU)
	}
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return material, nil
}

// normalizarBusqueda quita tildes del término de búsqueda. El catálogo se
// captura sin tildes (Polvora, Quimicos), así una búsqueda escrita con ellas
// sigue encontrando el material o el proveedor.
func normalizarBusqueda(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:                 m.ID,
		SKU:                m.SKU,
		NombreMaterial:     m.NombreMaterial,
		Categoria:          string(m.Categoria),
		StockActual:        m.StockActual,
		StockMinimo:        m.StockMinimo,
		UnidadMedida:       string(m.UnidadMedida),
		PrecioUnitario:     m.PrecioUnitario,
		Proveedor:          m.Proveedor,
		UbicacionAlmacen:   m.UbicacionAlmacen,
		Notas:              m.Notas,
		Activo:             m.Activo,
		NivelStock:         string(m.NivelStock()),
		FechaUltimaEntrada: m.FechaUltimaEntrada,
		FechaUltimaSalida:  m.FechaUltimaSalida,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toMovimientoResponse(m *entity.Movimiento, nombreMaterial string) *dto.MovimientoResponse {
	if m == nil {
		return nil
	}
	return &dto.MovimientoResponse{
		ID:               m.ID,
		SKU:              m.SKU,
		TipoMovimiento:   m.TipoMovimiento,
		Cantidad:         m.Cantidad,
		CantidadAnterior: m.CantidadAnterior,
		CantidadNueva:    m.CantidadNueva,
		Motivo:           m.Motivo,
		Usuario:          m.Usuario,
		NombreMaterial:   nombreMaterial,
		FechaMovimiento:  m.FechaMovimiento,
	}
}
