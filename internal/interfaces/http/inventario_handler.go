package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pyrocontrol/inventario-api/internal/application/dto"
	"github.com/pyrocontrol/inventario-api/internal/application/inventario"
	"github.com/pyrocontrol/inventario-api/internal/domain"
	"github.com/pyrocontrol/inventario-api/pkg/logger"
)

// InventarioHandler maneja las peticiones HTTP del inventario.
type InventarioHandler struct {
	materialUC   *inventario.MaterialUseCase
	movimientoUC *inventario.RegistrarMovimientoUseCase
	log          *logger.Logger
	devMode      bool // en development los 500 exponen el detalle del error
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(
	materialUC *inventario.MaterialUseCase,
	movimientoUC *inventario.RegistrarMovimientoUseCase,
	log *logger.Logger,
	devMode bool,
) *InventarioHandler {
	return &InventarioHandler{
		materialUC:   materialUC,
		movimientoUC: movimientoUC,
		log:          log,
		devMode:      devMode,
	}
}

// Create godoc
// @Summary      Crear material en el inventario
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "sku, nombre_material, categoria, stock_actual, stock_minimo, unidad_medida, precio_unitario?, proveedor?, ubicacion_almacen?, notas?"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/inventario [post]
func (h *InventarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	material, err := h.materialUC.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return h.fail(c, fiber.StatusBadRequest, "ya existe un material con este SKU")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return h.fail(c, fiber.StatusBadRequest, "datos del material inválidos")
		}
		return h.internal(c, err, "crear material")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "material agregado al inventario exitosamente",
		"data":    material,
	})
}

// List godoc
// @Summary      Listar materiales con filtros opcionales
// @Tags         inventario
// @Produce      json
// @Param        categoria    query  string  false  "categoría exacta"
// @Param        nivel_stock  query  string  false  "CRITICO | BAJO | NORMAL"
// @Param        search       query  string  false  "substring sobre sku/nombre/proveedor"
// @Success      200  {object}  map[string]any
// @Router       /api/inventario [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	items, aplicados, err := h.materialUC.List(
		c.Query("categoria"), c.Query("nivel_stock"), c.Query("search"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return h.fail(c, fiber.StatusBadRequest, "filtros inválidos")
		}
		return h.internal(c, err, "listar inventario")
	}
	if aplicados == nil {
		aplicados = []string{}
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"data":            items,
		"count":           len(items),
		"filters_applied": aplicados,
	})
}

// GetByID godoc
// @Summary      Obtener material por ID o SKU
// @Tags         inventario
// @Produce      json
// @Param        id  path  string  true  "UUID o SKU"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/inventario/{id} [get]
func (h *InventarioHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.materialUC.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.fail(c, fiber.StatusNotFound, "material no encontrado")
		}
		return h.internal(c, err, "obtener material")
	}
	return c.JSON(fiber.Map{"success": true, "data": material})
}

// Alertas godoc
// @Summary      Materiales en nivel BAJO o CRITICO
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/inventario/alertas [get]
func (h *InventarioHandler) Alertas(c *fiber.Ctx) error {
	alertas, criticas, bajas, err := h.materialUC.Alertas()
	if err != nil {
		return h.internal(c, err, "obtener alertas")
	}
	return c.JSON(fiber.Map{
		"success":            true,
		"data":               alertas,
		"count":              len(alertas),
		"alertas_criticas":   criticas,
		"alertas_bajo_stock": bajas,
	})
}

// ReporteAlertas godoc
// @Summary      Reporte PDF de las alertas de stock
// @Tags         inventario
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventario/alertas/reporte [get]
func (h *InventarioHandler) ReporteAlertas(c *fiber.Ctx) error {
	pdf, err := h.materialUC.ReporteAlertas(c.Context())
	if err != nil {
		return h.internal(c, err, "generar reporte de alertas")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="alertas_stock.pdf"`)
	return c.Send(pdf)
}

// Estadisticas godoc
// @Summary      Resumen general y desglose por categoría
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/inventario/estadisticas [get]
func (h *InventarioHandler) Estadisticas(c *fiber.Ctx) error {
	stats, err := h.materialUC.Estadisticas()
	if err != nil {
		return h.internal(c, err, "obtener estadisticas")
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de stock (entrada, salida, ajuste)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.RegistrarMovimientoRequest  true  "tipo_movimiento, cantidad, motivo, usuario?"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/inventario/{id}/movimiento [post]
func (h *InventarioHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	material, movimiento, err := h.movimientoUC.Registrar(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.fail(c, fiber.StatusNotFound, "material no encontrado")
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return h.fail(c, fiber.StatusBadRequest, "stock insuficiente para realizar la salida")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return h.fail(c, fiber.StatusBadRequest, "movimiento inválido: verifique tipo, cantidad y motivo")
		}
		return h.internal(c, err, "registrar movimiento")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%s registrada exitosamente", tituloMovimiento(movimiento.TipoMovimiento)),
		"data": fiber.Map{
			"material":   material,
			"movimiento": movimiento,
		},
	})
}

// Movimientos godoc
// @Summary      Historial de movimientos de un material
// @Tags         inventario
// @Produce      json
// @Param        id     path   string  true   "ID del material"
// @Param        limit  query  int     false  "máximo de registros (default 50)"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/inventario/{id}/movimientos [get]
func (h *InventarioHandler) Movimientos(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	historial, err := h.materialUC.Movimientos(c.Params("id"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.fail(c, fiber.StatusNotFound, "material no encontrado")
		}
		return h.internal(c, err, "obtener movimientos")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    historial,
		"count":   len(historial.Movimientos),
	})
}

// Update godoc
// @Summary      Actualizar información del material (nunca stock ni SKU)
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "campos editables"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/inventario/{id} [put]
func (h *InventarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	material, err := h.materialUC.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.fail(c, fiber.StatusNotFound, "material no encontrado")
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return h.fail(c, fiber.StatusBadRequest, "datos del material inválidos")
		}
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return h.fail(c, fiber.StatusBadRequest, "no se pudo actualizar el material")
		}
		return h.internal(c, err, "actualizar material")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "material actualizado exitosamente",
		"data":    material,
	})
}

// Deactivate godoc
// @Summary      Desactivar material (baja lógica, idempotente)
// @Tags         inventario
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/inventario/{id} [delete]
func (h *InventarioHandler) Deactivate(c *fiber.Ctx) error {
	rows, err := h.materialUC.Deactivate(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.fail(c, fiber.StatusNotFound, "material no encontrado")
		}
		return h.internal(c, err, "desactivar material")
	}
	message := "material eliminado exitosamente"
	if rows == 0 {
		message = "el material ya estaba inactivo"
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"message":         message,
		"filas_afectadas": rows,
	})
}

// fail respuesta 4xx con el sobre estándar.
func (h *InventarioHandler) fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// internal respuesta 500. El detalle del error se registra siempre; solo se
// expone al cliente en development.
func (h *InventarioHandler) internal(c *fiber.Ctx, err error, op string) error {
	h.log.Error().Err(err).Str("op", op).Msg("error interno")
	message := "error interno del servidor"
	if h.devMode {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func tituloMovimiento(tipo string) string {
	switch tipo {
	case "entrada":
		return "Entrada"
	case "salida":
		return "Salida"
	default:
		return "Ajuste"
	}
}
