package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pyrocontrol/inventario-api/internal/application/inventario"
	"github.com/pyrocontrol/inventario-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC   *inventario.MaterialUseCase
	MovimientoUC *inventario.RegistrarMovimientoUseCase
	Logger       *logger.Logger
	DevMode      bool
}

// Router registra las rutas de la API. Las rutas fijas (alertas,
// estadisticas) van antes de /:id para que no las capture el parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inv := api.Group("/inventario")
	handler := NewInventarioHandler(deps.MaterialUC, deps.MovimientoUC, deps.Logger, deps.DevMode)
	inv.Post("/", handler.Create)
	inv.Get("/", handler.List)
	inv.Get("/alertas", handler.Alertas)
	inv.Get("/alertas/reporte", handler.ReporteAlertas)
	inv.Get("/estadisticas", handler.Estadisticas)
	inv.Get("/:id", handler.GetByID)
	inv.Put("/:id", handler.Update)
	inv.Delete("/:id", handler.Deactivate)
	inv.Post("/:id/movimiento", handler.RegistrarMovimiento)
	inv.Get("/:id/movimientos", handler.Movimientos)
}
