package inventario

import (
	"context"
	"time"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o se escriben stock y libro juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}

// AlertReportGenerator genera la representación PDF del reporte de alertas.
type AlertReportGenerator interface {
	GenerarReporteAlertas(ctx context.Context, alertas []dto.AlertaMaterialResponse, generadoEn time.Time) ([]byte, error)
}
