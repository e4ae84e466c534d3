package inventario

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/domain"
	"github.com/pyrocontrol/inventario-api/internal/domain/entity"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

// RegistrarMovimientoUseCase aplica movimientos de stock (entrada, salida,
// ajuste) de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback. Es el único camino que muta el stock actual de un material,
// y cada mutación confirmada deja exactamente un registro en el libro con las
// cantidades antes/después.
type RegistrarMovimientoUseCase struct {
	txRunner TxRunner
}

// NewRegistrarMovimientoUseCase construye el caso de uso.
func NewRegistrarMovimientoUseCase(txRunner TxRunner) *RegistrarMovimientoUseCase {
	return &RegistrarMovimientoUseCase{txRunner: txRunner}
}

// Registrar valida la entrada, inicia la transacción, bloquea la fila del
// material activo, calcula el stock nuevo según el tipo y persiste stock y
// movimiento juntos. Cualquier error después del bloqueo deja stock y libro
// en su estado previo.
//
// Reglas por tipo:
//   - entrada: nuevo = actual + cantidad; estampa fecha_ultima_entrada.
//   - salida:  nuevo = actual - cantidad; ErrInsufficientStock si queda
//     negativo; estampa fecha_ultima_salida.
//   - ajuste:  nuevo = cantidad (nivel absoluto); no estampa fechas.
func (uc *RegistrarMovimientoUseCase) Registrar(
	ctx context.Context,
	materialID string,
	in dto.RegistrarMovimientoRequest,
) (*dto.MaterialResponse, *dto.MovimientoResponse, error) {
	if !entity.TipoMovimientoValido(in.TipoMovimiento) {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	motivo := strings.TrimSpace(in.Motivo)
	if l := len(motivo); l < 3 || l > 255 {
		return nil, nil, domain.ErrInvalidInput
	}
	if len(in.Usuario) > 100 {
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var material *entity.Material
	var movimiento *entity.Movimiento

	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovimientoRepository,
	) error {
		// Bloquea la fila del material activo para serializar movimientos
		// concurrentes sobre el mismo SKU.
		m, err := materialRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}

		anterior := m.StockActual
		var nuevo decimal.Decimal
		switch in.TipoMovimiento {
		case entity.MovimientoEntrada:
			nuevo = anterior.Add(in.Cantidad)
		case entity.MovimientoSalida:
			nuevo = anterior.Sub(in.Cantidad)
			if nuevo.IsNegative() {
				return domain.ErrInsufficientStock
			}
		case entity.MovimientoAjuste:
			nuevo = in.Cantidad
		}

		if err := materialRepo.UpdateStock(m.ID, nuevo, in.TipoMovimiento, now); err != nil {
			return err
		}

		mov := &entity.Movimiento{
			SKU:              m.SKU,
			TipoMovimiento:   in.TipoMovimiento,
			Cantidad:         in.Cantidad,
			CantidadAnterior: anterior,
			CantidadNueva:    nuevo,
			Motivo:           motivo,
			Usuario:          in.Usuario,
			FechaMovimiento:  now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		m.StockActual = nuevo
		switch in.TipoMovimiento {
		case entity.MovimientoEntrada:
			m.FechaUltimaEntrada = &now
		case entity.MovimientoSalida:
			m.FechaUltimaSalida = &now
		}
		m.UpdatedAt = now
		material, movimiento = m, mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return toMaterialResponse(material), toMovimientoResponse(movimiento, material.NombreMaterial), nil
}
