package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vetstock-api/internal/application/dto"
	"github.com/jhoicas/vetstock-api/internal/application/inventory"
	"github.com/jhoicas/vetstock-api/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock.
type InventoryHandler struct {
	uc            *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
	v             validator.Validator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase, v validator.Validator) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, v: v}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (in|out), quantity, notes"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterBatch godoc
// @Summary      Registrar varias líneas de entrada o salida
// @Description  Todo o nada: si una línea falla no se aplica ninguna.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "type y líneas"
// @Success      201   {object}  dto.BatchMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/batch [post]
func (h *InventoryHandler) RegisterBatch(c *fiber.Ctx) error {
	var in dto.BatchMovementRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterBatch(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Revierte su efecto sobre el stock (una entrada revertida se recorta a 0).
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        type        query  string  false  "in | out"
// @Param        product_id  query  string  false  "Producto"
// @Param        window      query  string  false  "all | today | week | month"
// @Param        search      query  string  false  "Producto o notas"
// @Param        sort_by     query  string  false  "date | product | quantity | type"
// @Param        order       query  string  false  "asc | desc"
// @Param        limit       query  int     false  "Límite (0 = todos)"  default(20)
// @Param        offset      query  int     false  "Offset"              default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q := dto.MovementListQuery{
		ListQuery: listQuery(c),
		Type:      c.Query("type"),
		ProductID: c.Query("product_id"),
		Window:    c.Query("window"),
	}
	if ok, err := validateQuery(c, h.v, q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList devuelve los productos a reponer ordenados por prioridad.
// GET /api/replenishment
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
