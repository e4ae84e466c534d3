package inventario_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/domain"
	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso. fakeTxRunner emula la semántica de
// la transacción real: serializa los movimientos (el mutex hace de lock de
// fila) y restaura el estado previo si el callback falla (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu            sync.Mutex
	materials     map[string]*entity.Material // por ID
	movs          []*entity.Movimiento
	seq           int64
	failMovCreate bool // simula fallo de storage al escribir el libro
}

func newFakeStore() *fakeStore {
	return &fakeStore{materials: map[string]*entity.Material{}}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed registra un material activo y retorna su ID.
func (s *fakeStore) seed(sku, nombre string, categoria entity.Categoria, actual, minimo string) string {
	now := time.Now()
	m := &entity.Material{
		ID:             uuid.New().String(),
		SKU:            sku,
		NombreMaterial: nombre,
		Categoria:      categoria,
		StockActual:    decimal.RequireFromString(actual),
		StockMinimo:    decimal.RequireFromString(minimo),
		UnidadMedida:   entity.UnidadPieza,
		Activo:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.materials[m.ID] = m
	return m.ID
}

func cloneMaterial(m *entity.Material) *entity.Material {
	c := *m
	if m.PrecioUnitario != nil {
		p := *m.PrecioUnitario
		c.PrecioUnitario = &p
	}
	if m.FechaUltimaEntrada != nil {
		f := *m.FechaUltimaEntrada
		c.FechaUltimaEntrada = &f
	}
	if m.FechaUltimaSalida != nil {
		f := *m.FechaUltimaSalida
		c.FechaUltimaSalida = &f
	}
	return &c
}

// ── MaterialRepository ────────────────────────────────────────────────────────

type fakeMaterialRepo struct{ s *fakeStore }

var _ repository.MaterialRepository = (*fakeMaterialRepo)(nil)

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	for _, existing := range r.s.materials {
		if existing.SKU == m.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	if m, ok := r.s.materials[id]; ok {
		return cloneMaterial(m), nil
	}
	return nil, nil
}

func (r *fakeMaterialRepo) GetBySKU(sku string) (*entity.Material, error) {
	for _, m := range r.s.materials {
		if m.SKU == sku {
			return cloneMaterial(m), nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	m, ok := r.s.materials[id]
	if !ok || !m.Activo {
		return nil, nil
	}
	return cloneMaterial(m), nil
}

func (r *fakeMaterialRepo) List(filters repository.MaterialFilters) ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.s.materials {
		if !m.Activo {
			continue
		}
		if filters.Categoria != "" && m.Categoria != filters.Categoria {
			continue
		}
		if filters.NivelStock != "" && m.NivelStock() != filters.NivelStock {
			continue
		}
		if filters.Search != "" && !matchSearch(m, filters.Search) {
			continue
		}
		list = append(list, cloneMaterial(m))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Categoria != list[j].Categoria {
			return list[i].Categoria < list[j].Categoria
		}
		return list[i].NombreMaterial < list[j].NombreMaterial
	})
	return list, nil
}

func matchSearch(m *entity.Material, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(m.SKU), s) ||
		strings.Contains(strings.ToLower(m.NombreMaterial), s) ||
		strings.Contains(strings.ToLower(m.Proveedor), s)
}

func (r *fakeMaterialRepo) ListAlertas() ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.s.materials {
		if m.Activo && m.NivelStock() != entity.NivelNormal {
			list = append(list, cloneMaterial(m))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		pi, pj := 2, 2
		if list[i].NivelStock() == entity.NivelCritico {
			pi = 1
		}
		if list[j].NivelStock() == entity.NivelCritico {
			pj = 1
		}
		if pi != pj {
			return pi < pj
		}
		return list[i].Categoria < list[j].Categoria
	})
	return list, nil
}

func (r *fakeMaterialRepo) Update(m *entity.Material) (int64, error) {
	existing, ok := r.s.materials[m.ID]
	if !ok {
		return 0, nil
	}
	existing.NombreMaterial = m.NombreMaterial
	existing.Categoria = m.Categoria
	existing.StockMinimo = m.StockMinimo
	existing.UnidadMedida = m.UnidadMedida
	existing.PrecioUnitario = m.PrecioUnitario
	existing.Proveedor = m.Proveedor
	existing.UbicacionAlmacen = m.UbicacionAlmacen
	existing.Notas = m.Notas
	existing.UpdatedAt = m.UpdatedAt
	return 1, nil
}

func (r *fakeMaterialRepo) UpdateStock(id string, nuevo decimal.Decimal, tipo string, now time.Time) error {
	m, ok := r.s.materials[id]
	if !ok {
		return errors.New("material inexistente")
	}
	m.StockActual = nuevo
	switch tipo {
	case entity.MovimientoEntrada:
		m.FechaUltimaEntrada = &now
	case entity.MovimientoSalida:
		m.FechaUltimaSalida = &now
	}
	m.UpdatedAt = now
	return nil
}

func (r *fakeMaterialRepo) Deactivate(id string) (int64, error) {
	m, ok := r.s.materials[id]
	if !ok || !m.Activo {
		return 0, nil
	}
	m.Activo = false
	return 1, nil
}

// ── MovimientoRepository ──────────────────────────────────────────────────────

type fakeMovRepo struct{ s *fakeStore }

var _ repository.MovimientoRepository = (*fakeMovRepo)(nil)

func (r *fakeMovRepo) Create(m *entity.Movimiento) error {
	if r.s.failMovCreate {
		return errors.New("insert movimiento: conexión perdida")
	}
	r.s.seq++
	m.ID = r.s.seq
	clone := *m
	r.s.movs = append(r.s.movs, &clone)
	return nil
}

func (r *fakeMovRepo) ListByMaterial(materialID string, limit int) ([]*entity.MovimientoConMaterial, error) {
	material, ok := r.s.materials[materialID]
	if !ok {
		return nil, nil
	}
	var list []*entity.MovimientoConMaterial
	for i := len(r.s.movs) - 1; i >= 0 && len(list) < limit; i-- {
		if r.s.movs[i].SKU == material.SKU {
			list = append(list, &entity.MovimientoConMaterial{
				Movimiento:     *r.s.movs[i],
				NombreMaterial: material.NombreMaterial,
			})
		}
	}
	return list, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Snapshot para emular rollback si fn falla.
	matsBackup := make(map[string]*entity.Material, len(r.s.materials))
	for k, v := range r.s.materials {
		matsBackup[k] = cloneMaterial(v)
	}
	movsBackup := append([]*entity.Movimiento(nil), r.s.movs...)
	seqBackup := r.s.seq

	if err := fn(&fakeMaterialRepo{r.s}, &fakeMovRepo{r.s}); err != nil {
		r.s.materials = matsBackup
		r.s.movs = movsBackup
		r.s.seq = seqBackup
		return err
	}
	return nil
}

// ── Estadísticas y reporte ────────────────────────────────────────────────────

type stubStatsRepo struct {
	porCategoria []*entity.EstadisticaCategoria
	resumen      *entity.ResumenInventario
}

var _ repository.EstadisticasRepository = (*stubStatsRepo)(nil)

func (r *stubStatsRepo) PorCategoria() ([]*entity.EstadisticaCategoria, error) {
	return r.porCategoria, nil
}

func (r *stubStatsRepo) Resumen() (*entity.ResumenInventario, error) {
	return r.resumen, nil
}

type stubReportGen struct {
	recibidas []dto.AlertaMaterialResponse
}

func (g *stubReportGen) GenerarReporteAlertas(_ context.Context, alertas []dto.AlertaMaterialResponse, _ time.Time) ([]byte, error) {
	g.recibidas = alertas
	return []byte("%PDF-1.7 stub"), nil
}
